package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/choretracker/internal/models"
	"github.com/mmynk/choretracker/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidUsername    = errors.New("username must be 1-32 letters, digits, '.', '_' or '-'")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrUsernameExists     = errors.New("username already taken")
	ErrEmailExists        = errors.New("email already registered")
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,32}$`)

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
// Lookups return an error wrapping storage.ErrNotFound for unknown users.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
}

// WithCost returns a copy using the given bcrypt cost. Tests use
// bcrypt.MinCost to keep hashing fast.
func (a *PasswordAuthenticator) WithCost(cost int) *PasswordAuthenticator {
	c := *a
	c.cost = cost
	return &c
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new user account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, reg Registration) (*models.User, error) {
	username := strings.TrimSpace(reg.Username)
	email := strings.TrimSpace(reg.Email)

	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if err := a.ValidateCredential(reg.Credential); err != nil {
		return nil, err
	}

	if err := a.ensureFree(ctx, a.storage.GetUserByUsername, username, ErrUsernameExists); err != nil {
		return nil, err
	}
	if err := a.ensureFree(ctx, a.storage.GetUserByEmail, email, ErrEmailExists); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(username, email, strings.TrimSpace(reg.Name), string(hashedPassword))
	// A concurrent registration can claim the name after ensureFree.
	err = a.storage.CreateUser(ctx, user)
	switch {
	case errors.Is(err, storage.ErrUsernameTaken):
		return nil, ErrUsernameExists
	case errors.Is(err, storage.ErrEmailTaken):
		return nil, ErrEmailExists
	case err != nil:
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// ensureFree returns taken if lookup finds a user for key.
func (a *PasswordAuthenticator) ensureFree(
	ctx context.Context,
	lookup func(context.Context, string) (*models.User, error),
	key string,
	taken error,
) error {
	_, err := lookup(ctx, key)
	switch {
	case err == nil:
		return taken
	case errors.Is(err, storage.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("failed to check existing user: %w", err)
	}
}

// Authenticate verifies the username and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
