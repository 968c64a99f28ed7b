package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sisques-labs/pair-pay/internal/auth"
	"github.com/sisques-labs/pair-pay/internal/models"
)

// Identity is what the session token asserts about the caller. Services
// take it instead of re-reading the users table on every call.
type Identity struct {
	UserID   string
	Email    string
	FullName string
}

// AuthService handles account registration and session issuance.
type AuthService struct {
	authenticator auth.Authenticator
	tokens        *auth.JWTManager
	users         auth.UserStorage
}

// NewAuthService creates a new AuthService.
func NewAuthService(authenticator auth.Authenticator, tokens *auth.JWTManager, users auth.UserStorage) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		tokens:        tokens,
		users:         users,
	}
}

// Register creates a new account and returns the user with a session
// token. Credential and email validation errors come from the
// authenticator (auth.ErrInvalidEmail, auth.ErrWeakPassword,
// auth.ErrEmailExists).
func (s *AuthService) Register(ctx context.Context, email, fullName, password string) (*models.User, string, error) {
	user, err := s.authenticator.Register(ctx, email, fullName, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("User registered", "user_id", user.ID)
	return user, token, nil
}

// Login verifies the credentials and returns the user with a session
// token. Failures surface as auth.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}

// Logout ends the session. Sessions are stateless JWTs so there is
// nothing to revoke server-side; the client discards the token.
func (s *AuthService) Logout(ctx context.Context, id Identity) error {
	if id.UserID == "" {
		return ErrUnauthenticated
	}
	slog.Info("User logged out", "user_id", id.UserID)
	return nil
}

// GetCurrentUser returns the account behind the session.
func (s *AuthService) GetCurrentUser(ctx context.Context, id Identity) (*models.User, error) {
	if id.UserID == "" {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetUserByID(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
