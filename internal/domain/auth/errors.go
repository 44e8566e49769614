package auth

import "errors"

// Token errors surfaced by the auth middleware. Token issuance lives in the
// surrounding platform; this service only verifies.
var (
	ErrInvalidToken = errors.New("invalid or missing token")
	ErrMissingActor = errors.New("actor identity missing from token claims")
	ErrInvalidRole  = errors.New("unknown role in token claims")
)
