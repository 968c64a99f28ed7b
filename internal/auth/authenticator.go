package auth

import (
	"context"

	"github.com/sisques-labs/pair-pay/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	// Returns the created user or an error if registration fails.
	Register(ctx context.Context, email, fullName, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
