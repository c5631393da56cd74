package auth

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"
	"github.com/mtakagi/tasklist-api/internal/config"
	"github.com/mtakagi/tasklist-api/internal/domain"
	"github.com/mtakagi/tasklist-api/internal/store"
)

const testTokenSecret = "test-secret-test-secret-test-secret!"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		TokenSecret:          testTokenSecret,
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
		LoginMaxAttempts:     5,
		LoginWindowSeconds:   60,
		ThrottlePerMinute:    6,
	}
}

// fakeUserStore is an in-memory store.UserStore for service tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *fakeUserStore) WithTx(*sql.Tx) store.UserStore { return s }

// fakeTokenStore is an in-memory store.TokenStore for service tests.
type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]*domain.AuthToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[uuid.UUID]*domain.AuthToken)}
}

func (s *fakeTokenStore) Create(_ context.Context, token *domain.AuthToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *token
	s.tokens[token.JTI] = &copied
	return nil
}

func (s *fakeTokenStore) GetByJTI(_ context.Context, jti uuid.UUID) (*domain.AuthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[jti]
	if !ok {
		return nil, store.ErrTokenNotFound
	}
	copied := *token
	return &copied, nil
}

func (s *fakeTokenStore) Delete(_ context.Context, jti uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[jti]; !ok {
		return store.ErrTokenNotFound
	}
	delete(s.tokens, jti)
	return nil
}

func (s *fakeTokenStore) WithTx(*sql.Tx) store.TokenStore { return s }
