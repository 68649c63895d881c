package auth

import (
	"context"

	"github.com/mmynk/todolist/internal/models"
)

// Authenticator defines the interface for credential-based account handling.
type Authenticator interface {
	// Register creates a new account. The credential is stored hashed.
	Register(ctx context.Context, lastName, firstName, email, credential string) (*models.User, error)

	// Authenticate returns the user registered with email if credential matches.
	// Returns ErrUserNotFound for an unknown email and ErrInvalidCredentials
	// for a mismatch.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the minimum requirements.
	ValidateCredential(credential string) error
}
