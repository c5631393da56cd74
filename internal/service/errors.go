package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrInternal is returned when a storage operation fails unexpectedly.
	// The underlying error is logged at the service boundary with
	// correlating identifiers; its detail never reaches the caller.
	ErrInternal = errors.New("internal error")
)
