package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mtakagi/tasklist-api/internal/api/middleware"
	"github.com/mtakagi/tasklist-api/internal/api/shared"
	"github.com/mtakagi/tasklist-api/internal/domain"
	"github.com/mtakagi/tasklist-api/internal/service/auth"
	"github.com/mtakagi/tasklist-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles the /register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmailExists):
			RespondWithFieldError(w, r, "email", "The email has already been taken.")
		case errors.Is(err, domain.ErrValidation):
			RespondWithValidationError(w, r, err)
		default:
			HandleServiceError(w, r, err)
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		Message:     "User registered successfully",
		AccessToken: token,
		TokenType:   "Bearer",
	})
}

// Login handles the /login endpoint. The rate limiter inside the auth
// service runs before credentials are checked, so a throttled client
// learns nothing about whether the email exists.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password, middleware.ClientKey(r))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
	})
}

// Logout handles the /logout endpoint. It revokes exactly the presented
// token; the auth middleware has already validated it, but the revocation
// itself may still fail if the token was revoked concurrently.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// bearerToken extracts the token from the Authorization header, or returns
// an empty string when the header is missing or malformed.
func bearerToken(r *http.Request) string {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
