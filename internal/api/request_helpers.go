package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mtakagi/tasklist-api/internal/api/shared"
	"github.com/mtakagi/tasklist-api/internal/domain"
)

// decodeAndValidate decodes the request body into req and validates it.
// On failure it writes the appropriate error response (400 for a malformed
// body, 422 with field-level messages for validation failures) and returns
// false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}

	if err := shared.ValidateRequest(req); err != nil {
		RespondWithValidationError(w, r, err)
		return false
	}

	return true
}

// RespondWithValidationError writes a 422 response carrying per-field
// messages derived from the validator error.
func RespondWithValidationError(w http.ResponseWriter, r *http.Request, err error) {
	fieldErrors := make(map[string][]string)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			fieldErrors[field] = append(fieldErrors[field], validationMessage(field, fe))
		}
	}

	shared.RespondWithJSON(w, r, http.StatusUnprocessableEntity, shared.ValidationErrorResponse{
		Message: "The given data was invalid.",
		Errors:  fieldErrors,
	})
}

// RespondWithFieldError writes a 422 response for a single known field
// failure, e.g. a duplicate email.
func RespondWithFieldError(w http.ResponseWriter, r *http.Request, field, message string) {
	shared.RespondWithJSON(w, r, http.StatusUnprocessableEntity, shared.ValidationErrorResponse{
		Message: "The given data was invalid.",
		Errors:  map[string][]string{field: {message}},
	})
}

// validationMessage renders a human-readable message for one field error.
func validationMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}

// getPathTaskID extracts the task ID from the URL path. A malformed ID is
// reported as "not found" rather than a validation failure, so probing
// with junk IDs is indistinguishable from probing with unknown ones.
func getPathTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return uuid.Nil, false
	}
	return id, true
}

// requireUser extracts the authenticated user placed in the context by the
// auth middleware. Writes a 401 response and returns false if absent.
func requireUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, found := shared.GetUser(r.Context())
	if !found {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated.")
		return nil, false
	}
	return user, true
}
