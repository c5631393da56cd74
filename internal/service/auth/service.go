package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mtakagi/tasklist-api/internal/domain"
	"github.com/mtakagi/tasklist-api/internal/platform/logger"
	"github.com/mtakagi/tasklist-api/internal/ratelimit"
	"github.com/mtakagi/tasklist-api/internal/store"
)

// dummyBcryptHash is compared against when a login names an unknown email,
// so the unknown-email and wrong-password paths cost roughly the same time.
const dummyBcryptHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service implements registration, login, and logout on top of the user
// store, the token service, and the login rate limiter.
type Service struct {
	users        store.UserStore
	tokens       TokenService
	hasher       PasswordHasher
	loginLimiter *ratelimit.Limiter
	maxAttempts  int
}

// NewService creates an auth Service. The limiter must be dedicated to
// login attempts; it is keyed by client IP and cleared on success.
func NewService(
	users store.UserStore,
	tokens TokenService,
	hasher PasswordHasher,
	loginLimiter *ratelimit.Limiter,
	maxAttempts int,
) *Service {
	return &Service{
		users:        users,
		tokens:       tokens,
		hasher:       hasher,
		loginLimiter: loginLimiter,
		maxAttempts:  maxAttempts,
	}
}

// Register creates a user from the given details and issues their first
// token. Returns store.ErrEmailExists when the email is already taken.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	log := logger.FromContext(ctx)

	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		log.Error("failed to issue token after registration",
			"error", err,
			"user_id", user.ID)
		return "", err
	}

	log.Info("user registered", "user_id", user.ID)
	return token, nil
}

// Login authenticates email/password and issues a fresh token. The rate
// limiter is consulted, keyed by clientKey, before credentials are checked;
// failed attempts increment the counter and a success clears it. Unknown
// email and wrong password produce the same ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password, clientKey string) (string, error) {
	log := logger.FromContext(ctx)

	if s.loginLimiter.TooManyAttempts(clientKey, s.maxAttempts) {
		log.Warn("login rate limit exceeded", "client_key", clientKey)
		return "", ErrRateLimited
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Burn a hash comparison anyway so the miss costs as much as
			// a mismatch.
			_ = s.hasher.Compare(dummyBcryptHash, password)
			s.loginLimiter.Hit(clientKey)
			return "", ErrInvalidCredentials
		}
		log.Error("failed to load user for login", "error", err)
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		s.loginLimiter.Hit(clientKey)
		return "", ErrInvalidCredentials
	}

	s.loginLimiter.Clear(clientKey)

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		log.Error("failed to issue token after login",
			"error", err,
			"user_id", user.ID)
		return "", err
	}

	return token, nil
}

// Logout revokes the presented token. Revoking an invalid or already
// revoked token returns ErrInvalidToken.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	return s.tokens.Revoke(ctx, tokenString)
}
