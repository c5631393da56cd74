package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken is the server-side record of an issued bearer token. The token
// presented by clients is a signed JWT; its jti claim must resolve to one of
// these rows for the token to be accepted. Logout deletes the row, which
// invalidates the token regardless of its expiry.
type AuthToken struct {
	JTI       uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
}

// NewAuthToken creates a token record binding jti to userID.
func NewAuthToken(jti, userID uuid.UUID) *AuthToken {
	return &AuthToken{
		JTI:       jti,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
}
