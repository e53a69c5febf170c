package store

import "errors"

var (
	// ErrNotFound is returned when no mask is stored under a name.
	ErrNotFound = errors.New("mask not found")
	// ErrConflict is returned when an update kept losing WATCH races until retries ran out.
	ErrConflict = errors.New("mask update conflict")
	// ErrRedisUnavailable wraps backend failures.
	ErrRedisUnavailable = errors.New("redis unavailable")
)

// ErrNilMeter is returned by ExportMetrics when no meter is given.
var ErrNilMeter = errors.New("nil meter")
