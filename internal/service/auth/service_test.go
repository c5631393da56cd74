package auth

import (
	"context"
	"testing"
	"time"

	"github.com/mtakagi/tasklist-api/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestService builds an auth service over fresh fakes with a real token
// service and a low-cost bcrypt hasher.
func newTestService(t *testing.T) (*Service, *fakeUserStore, *ratelimit.Limiter) {
	t.Helper()

	users := newFakeUserStore()
	tokens, err := NewTokenService(testAuthConfig(), newFakeTokenStore(), users)
	require.NoError(t, err)

	limiter := ratelimit.New(time.Minute)
	svc := NewService(users, tokens, NewBcryptHasher(4), limiter, 5)

	return svc, users, limiter
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates user and issues token", func(t *testing.T) {
		t.Parallel()

		svc, users, _ := newTestService(t)
		ctx := context.Background()

		token, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		stored, err := users.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Empty(t, stored.Password, "plaintext password must not be stored")
		assert.NotEmpty(t, stored.HashedPassword)
		assert.NotEqual(t, "password123", stored.HashedPassword)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		ctx := context.Background()

		_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "Mallory", "alice@example.com", "different456")
		assert.Error(t, err)
	})

	t.Run("invalid password", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)

		_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "short")
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		ctx := context.Background()

		_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
		require.NoError(t, err)

		token, err := svc.Login(ctx, "alice@example.com", "password123", "10.0.0.1")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		ctx := context.Background()

		_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
		require.NoError(t, err)

		_, err = svc.Login(ctx, "alice@example.com", "wrongpassword", "10.0.0.1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email matches wrong password", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)

		_, err := svc.Login(context.Background(), "ghost@example.com", "password123", "10.0.0.1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginRateLimit(t *testing.T) {
	t.Parallel()

	t.Run("blocks after max failed attempts", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		ctx := context.Background()

		_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			_, err := svc.Login(ctx, "alice@example.com", "wrongpassword", "10.0.0.1")
			assert.ErrorIs(t, err, ErrInvalidCredentials, "attempt %d", i+1)
		}

		// Correct credentials no longer help once the limit is hit.
		_, err = svc.Login(ctx, "alice@example.com", "password123", "10.0.0.1")
		assert.ErrorIs(t, err, ErrRateLimited)
	})

	t.Run("unknown-email attempts count too", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			_, err := svc.Login(ctx, "ghost@example.com", "password123", "10.0.0.2")
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		}

		_, err := svc.Login(ctx, "ghost@example.com", "password123", "10.0.0.2")
		assert.ErrorIs(t, err, ErrRateLimited)
	})

	t.Run("limit is per client key", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		ctx := context.Background()

		_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			_, _ = svc.Login(ctx, "alice@example.com", "wrongpassword", "10.0.0.3")
		}

		// A different client is unaffected.
		token, err := svc.Login(ctx, "alice@example.com", "password123", "10.0.0.4")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("success clears the counter", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		ctx := context.Background()

		_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
		require.NoError(t, err)

		for i := 0; i < 4; i++ {
			_, _ = svc.Login(ctx, "alice@example.com", "wrongpassword", "10.0.0.5")
		}

		_, err = svc.Login(ctx, "alice@example.com", "password123", "10.0.0.5")
		require.NoError(t, err)

		// The failed-attempt budget is fully restored.
		for i := 0; i < 4; i++ {
			_, err := svc.Login(ctx, "alice@example.com", "wrongpassword", "10.0.0.5")
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		}
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	// The same token cannot be revoked twice.
	assert.ErrorIs(t, svc.Logout(ctx, token), ErrInvalidToken)
}
