package bitmask

import "errors"

var (
	// ErrInvalidArgument is returned for malformed input: a length that is not a positive
	// multiple of 8, a bit string with characters other than '0' and '1', or operands of
	// different sizes.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfBounds is returned when a position falls outside [0, Len()).
	ErrOutOfBounds = errors.New("position out of bounds")
)
