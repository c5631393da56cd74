package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed, has a bad
	// signature, or has been revoked. Revoked and never-issued tokens are
	// deliberately indistinguishable.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials is the single error reported for every failed
	// login, whether the email is unknown or the password is wrong.
	// Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrRateLimited indicates too many failed attempts from the same
	// client key within the limiter window.
	ErrRateLimited = errors.New("too many attempts")
)
