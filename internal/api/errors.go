package api

import (
	"errors"
	"net/http"

	"github.com/mtakagi/tasklist-api/internal/api/shared"
	"github.com/mtakagi/tasklist-api/internal/domain"
	"github.com/mtakagi/tasklist-api/internal/service"
	"github.com/mtakagi/tasklist-api/internal/service/auth"
	"github.com/mtakagi/tasklist-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients. Note that stale-version conflicts surface
// as store.ErrTaskNotFound and therefore map to 404, matching the
// documented behavior of the update protocol.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Rate limiting
	case errors.Is(err, auth.ErrRateLimited):
		return http.StatusTooManyRequests

	// Not found errors (uniform for missing, foreign, soft-deleted, and
	// stale-version tasks)
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Validation errors (duplicate email included: it is reported as a
	// field validation failure on the email field)
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Unauthenticated."

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "The email address or password is incorrect."

	case errors.Is(err, auth.ErrRateLimited):
		return "Too Many Attempts."

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrEmailExists):
		return "The email has already been taken."

	case errors.Is(err, domain.ErrValidation):
		return "The given data was invalid."

	case errors.Is(err, service.ErrInternal):
		return "An internal server error occurred"

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError writes the response for a non-validation service
// error: mapped status code, safe message, full (redacted) error in the
// logs only.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
