package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mtakagi/tasklist-api/internal/domain"
)

// TokenStore persists the server-side records of issued bearer tokens.
// A token is valid only while its record exists; deleting the record
// revokes the token.
type TokenStore interface {
	// Create saves a new token record.
	Create(ctx context.Context, token *domain.AuthToken) error

	// GetByJTI retrieves a token record by its jti.
	// Returns ErrTokenNotFound if the record does not exist.
	GetByJTI(ctx context.Context, jti uuid.UUID) (*domain.AuthToken, error)

	// Delete removes exactly the token record with the given jti.
	// Returns ErrTokenNotFound if no such record exists, which makes
	// revoking an already-revoked token an observable error.
	Delete(ctx context.Context, jti uuid.UUID) error

	// WithTx returns a new TokenStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TokenStore
}
