package store

import (
	"log/slog"
	"time"
)

const defaultMaxRetries = 8

// Option configures a Store.
type Option func(*Store)

// WithTTL sets an expiry applied on every write. Zero, the default, stores masks without
// expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithMaxRetries bounds how often Update retries after a WATCH conflict.
func WithMaxRetries(n int) Option {
	return func(s *Store) {
		if n >= 0 {
			s.maxRetries = n
		}
	}
}

// WithLogger sets the logger used for retries and undecodable payloads. By default
// nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}
