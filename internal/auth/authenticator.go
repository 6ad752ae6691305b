package auth

import (
	"context"

	"github.com/mmynk/choretracker/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates a new user account. The credential format depends on
	// the implementation. Returns the created user or an error if the username
	// or email is taken or the credential is rejected.
	Register(ctx context.Context, reg Registration) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	// Usernames are matched case-insensitively.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}

// Registration carries the fields a new account is created from.
type Registration struct {
	Username   string
	Email      string
	Name       string
	Credential string
}
