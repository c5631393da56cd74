package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mtakagi/tasklist-api/internal/domain"
	"github.com/mtakagi/tasklist-api/internal/store"
)

// TokenStore implements the store.TokenStore interface using PostgreSQL.
type TokenStore struct {
	db store.DBTX
}

// NewTokenStore creates a new PostgreSQL implementation of the TokenStore
// interface.
func NewTokenStore(db store.DBTX) *TokenStore {
	return &TokenStore{db: db}
}

// Ensure TokenStore implements store.TokenStore interface
var _ store.TokenStore = (*TokenStore)(nil)

// Create implements store.TokenStore.Create
func (s *TokenStore) Create(ctx context.Context, token *domain.AuthToken) error {
	const query = `
		INSERT INTO auth_tokens (jti, user_id, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := s.db.ExecContext(ctx, query, token.JTI, token.UserID, token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create auth token: %w", MapError(err))
	}

	return nil
}

// GetByJTI implements store.TokenStore.GetByJTI
func (s *TokenStore) GetByJTI(ctx context.Context, jti uuid.UUID) (*domain.AuthToken, error) {
	const query = `
		SELECT jti, user_id, created_at
		FROM auth_tokens WHERE jti = $1
	`

	var token domain.AuthToken
	err := s.db.QueryRowContext(ctx, query, jti).Scan(
		&token.JTI, &token.UserID, &token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get auth token by jti: %w", MapError(err))
	}

	return &token, nil
}

// Delete implements store.TokenStore.Delete. Deleting a token record that
// no longer exists reports ErrTokenNotFound so that double revocation is
// observable.
func (s *TokenStore) Delete(ctx context.Context, jti uuid.UUID) error {
	const query = `DELETE FROM auth_tokens WHERE jti = $1`

	result, err := s.db.ExecContext(ctx, query, jti)
	if err != nil {
		return fmt.Errorf("failed to delete auth token: %w", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrTokenNotFound)
}

// WithTx implements store.TokenStore.WithTx
func (s *TokenStore) WithTx(tx *sql.Tx) store.TokenStore {
	return &TokenStore{db: tx}
}
