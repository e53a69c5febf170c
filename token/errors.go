package token

import "errors"

var (
	// ErrTokenInvalid is returned for tokens that fail parsing or verification.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrDomainMismatch is returned when a token was issued for a different flag domain.
	ErrDomainMismatch = errors.New("token issued for another flag domain")
)
