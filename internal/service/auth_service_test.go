package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sisques-labs/pair-pay/internal/auth"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	store := newTestStore(t)
	authenticator := auth.NewPasswordAuthenticator(store)
	tokens := auth.NewJWTManager("test-secret-key-for-auth", time.Hour)
	return NewAuthService(authenticator, tokens, store)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "ana@example.com", "Ana García", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected non-empty user ID")
	}
	if token == "" {
		t.Error("expected session token")
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "ana@example.com", "", "another-pass")
		if !errors.Is(err, auth.ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "new@example.com", "", "short")
		if !errors.Is(err, auth.ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "not-an-email", "", "correct-horse")
		if !errors.Is(err, auth.ErrInvalidEmail) {
			t.Errorf("expected ErrInvalidEmail, got %v", err)
		}
	})

	t.Run("login", func(t *testing.T) {
		loggedIn, token, err := svc.Login(ctx, "ana@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if loggedIn.ID != user.ID {
			t.Errorf("user ID = %q, want %q", loggedIn.ID, user.ID)
		}
		if token == "" {
			t.Error("expected session token")
		}
	})

	t.Run("login wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ana@example.com", "wrong-password")
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("login unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "correct-horse")
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "ana@example.com", "Ana García", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, err := svc.GetCurrentUser(ctx, Identity{UserID: user.ID})
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if got.Email != "ana@example.com" {
		t.Errorf("email = %q, want ana@example.com", got.Email)
	}
	if got.FullName != "Ana García" {
		t.Errorf("full name = %q, want Ana García", got.FullName)
	}

	if _, err := svc.GetCurrentUser(ctx, Identity{}); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}

	if _, err := svc.GetCurrentUser(ctx, Identity{UserID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if err := svc.Logout(ctx, ana); err != nil {
		t.Errorf("Logout failed: %v", err)
	}
	if err := svc.Logout(ctx, Identity{}); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}
