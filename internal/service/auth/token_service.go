package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/mtakagi/tasklist-api/internal/domain"
)

// TokenService manages the lifecycle of bearer tokens. A token is a signed
// JWT whose jti claim is recorded server-side when issued; validation
// requires both a valid signature and a live record, and revocation deletes
// the record. This keeps tokens verifiable offline while still allowing
// logout to invalidate them immediately.
type TokenService interface {
	// Issue creates and signs a fresh token bound to userID and records it.
	Issue(ctx context.Context, userID uuid.UUID) (string, error)

	// Validate checks the token's signature and server-side record and
	// returns the bound user. Returns ErrExpiredToken for expired tokens
	// and ErrInvalidToken for malformed, forged, or revoked ones.
	Validate(ctx context.Context, tokenString string) (*domain.User, error)

	// Revoke deletes exactly the presented token's record. Revoking a
	// token that is invalid or already revoked is an error; revocation is
	// deliberately not idempotent.
	Revoke(ctx context.Context, tokenString string) error
}
