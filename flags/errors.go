package flags

import "errors"

var (
	// ErrTypeMismatch is returned when a flag does not belong to the bound domain.
	ErrTypeMismatch = errors.New("flag does not belong to domain")
	// ErrDecoding is returned when a mask has a set bit without a matching domain member.
	ErrDecoding = errors.New("mask cannot be decoded")
)
