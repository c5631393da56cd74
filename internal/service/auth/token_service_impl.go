package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mtakagi/tasklist-api/internal/config"
	"github.com/mtakagi/tasklist-api/internal/domain"
	"github.com/mtakagi/tasklist-api/internal/platform/logger"
	"github.com/mtakagi/tasklist-api/internal/store"
)

// hmacTokenService implements TokenService using HMAC-SHA256 signing plus
// a TokenStore record per issued token.
type hmacTokenService struct {
	signingKey    []byte
	tokenLifetime time.Duration
	tokens        store.TokenStore
	users         store.UserStore
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration    // Allowed drift when validating time claims
}

// tokenClaims defines the structure of the JWT claims we use.
type tokenClaims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// Ensure hmacTokenService implements TokenService interface
var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a TokenService using HMAC-SHA256 signing.
func NewTokenService(
	cfg config.AuthConfig,
	tokens store.TokenStore,
	users store.UserStore,
) (TokenService, error) {
	if len(cfg.TokenSecret) < 32 {
		return nil, fmt.Errorf("token secret must be at least 32 characters")
	}

	return &hmacTokenService{
		signingKey:    []byte(cfg.TokenSecret),
		tokenLifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		tokens:        tokens,
		users:         users,
		timeFunc:      time.Now,
		clockSkew:     2 * time.Minute,
	}, nil
}

// Issue implements TokenService.Issue.
func (s *hmacTokenService) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()
	jti := uuid.New()

	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
			ID:        jti.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign token",
			"error", err,
			"user_id", userID)
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	// Record the jti so the token can be revoked at logout. Without the
	// record the token is rejected even with a valid signature.
	if err := s.tokens.Create(ctx, domain.NewAuthToken(jti, userID)); err != nil {
		log.Error("failed to record issued token",
			"error", err,
			"user_id", userID,
			"jti", jti)
		return "", fmt.Errorf("failed to record issued token: %w", err)
	}

	return signedToken, nil
}

// Validate implements TokenService.Validate.
func (s *hmacTokenService) Validate(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.parse(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	record, err := s.tokens.GetByJTI(ctx, jti)
	if err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			// Revoked or never issued; indistinguishable on purpose.
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up token record: %w", err)
	}

	user, err := s.users.GetByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load token user: %w", err)
	}

	return user, nil
}

// Revoke implements TokenService.Revoke.
func (s *hmacTokenService) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.parse(ctx, tokenString)
	if err != nil {
		return err
	}

	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return ErrInvalidToken
	}

	if err := s.tokens.Delete(ctx, jti); err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to delete token record: %w", err)
	}

	return nil
}

// parse verifies the token signature and time claims and returns the claims.
func (s *hmacTokenService) parse(ctx context.Context, tokenString string) (*tokenClaims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed", "error", err)
			return nil, ErrInvalidToken
		default:
			log.Debug("token validation failed: other validation error",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
