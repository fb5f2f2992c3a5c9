package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"transit-backoffice/internal/adapters/persistence/models"
	"transit-backoffice/internal/adapters/persistence/repositories"
	"transit-backoffice/internal/pkg/password"
	"transit-backoffice/internal/pkg/token"

	"gorm.io/gorm"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService handles login and session resolution
type AuthService struct {
	userRepo repositories.UserRepository
	codec    *token.Codec
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, codec *token.Codec) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		codec:    codec,
	}
}

// NormalizeEmail trims and lowercases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login authenticates a user by email and password and returns the user
// together with a fresh session token. Unknown email, wrong password and
// inactive account all collapse into ErrInvalidCredentials so responses
// cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !user.IsActive {
		return nil, "", ErrInvalidCredentials
	}

	if !password.Verify(plainPassword, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	sessionToken, err := s.codec.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}

	log.Printf("✅ User logged in: %s", user.Email)
	return user, sessionToken, nil
}

// ResolveSession resolves a session token to its user. It returns
// (nil, nil) for every unauthenticated outcome: empty token, invalid or
// expired signature, unknown user id, or an inactive account. A non-nil
// error means the lookup itself failed (e.g. database unavailable).
// The resolution is read-only and idempotent; no token refresh happens.
func (s *AuthService) ResolveSession(ctx context.Context, sessionToken string) (*models.User, error) {
	if sessionToken == "" {
		return nil, nil
	}

	claims, err := s.codec.Verify(sessionToken)
	if err != nil {
		return nil, nil
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Valid token for a deleted user: treat as unauthenticated,
			// never resolve to a stale identity.
			return nil, nil
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, nil
	}

	return user, nil
}
