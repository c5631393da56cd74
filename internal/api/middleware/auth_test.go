package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/mtakagi/tasklist-api/internal/api/shared"
	"github.com/mtakagi/tasklist-api/internal/domain"
	"github.com/mtakagi/tasklist-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokenService answers Validate from a fixed token-to-user table.
type stubTokenService struct {
	users map[string]*domain.User
	err   error
}

func (s *stubTokenService) Issue(context.Context, uuid.UUID) (string, error) {
	return "", nil
}

func (s *stubTokenService) Validate(_ context.Context, token string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return user, nil
}

func (s *stubTokenService) Revoke(context.Context, string) error { return nil }

func authTestRequest(header string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v2/tasks", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return req
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	user := &domain.User{ID: uuid.New(), Email: "alice@example.com"}
	tokens := &stubTokenService{users: map[string]*domain.User{"good-token": user}}

	var captured *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = shared.GetUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	middleware := NewAuthMiddleware(tokens)
	handler := middleware.Authenticate(next)

	t.Run("valid token resolves the user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authTestRequest("Bearer good-token"))

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)
		assert.Equal(t, user.ID, captured.ID)
	})

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic abc123"},
		{name: "no token after scheme", header: "Bearer"},
		{name: "unknown token", header: "Bearer forged-token"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, authTestRequest(tc.header))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	t.Run("expired token", func(t *testing.T) {
		expired := NewAuthMiddleware(&stubTokenService{err: auth.ErrExpiredToken})
		rec := httptest.NewRecorder()
		expired.Authenticate(next).ServeHTTP(rec, authTestRequest("Bearer old-token"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token expired")
	})
}
