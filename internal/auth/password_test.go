package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/choretracker/internal/models"
	"github.com/mmynk/choretracker/internal/storage"
)

// memoryUsers is a map-backed UserStorage with case-insensitive keys.
type memoryUsers struct {
	byUsername map[string]*models.User
	byEmail    map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{
		byUsername: make(map[string]*models.User),
		byEmail:    make(map[string]*models.User),
	}
}

func (m *memoryUsers) CreateUser(_ context.Context, user *models.User) error {
	m.byUsername[strings.ToLower(user.Username)] = user
	m.byEmail[strings.ToLower(user.Email)] = user
	return nil
}

func (m *memoryUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if u, ok := m.byUsername[strings.ToLower(username)]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func (m *memoryUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[strings.ToLower(email)]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func newTestAuthenticator() *PasswordAuthenticator {
	return NewPasswordAuthenticator(newMemoryUsers()).WithCost(bcrypt.MinCost)
}

func TestRegister(t *testing.T) {
	a := newTestAuthenticator()
	ctx := context.Background()

	user, err := a.Register(ctx, Registration{
		Username:   "Alice",
		Email:      "alice@example.com",
		Name:       " Alice A. ",
		Credential: "password123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" || user.Username != "Alice" || user.Name != "Alice A." {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "password123" {
		t.Error("password stored in clear text")
	}

	tests := []struct {
		name    string
		reg     Registration
		wantErr error
	}{
		{"duplicate username ignores case", Registration{"ALICE", "other@example.com", "", "password123"}, ErrUsernameExists},
		{"duplicate email", Registration{"alice2", "alice@example.com", "", "password123"}, ErrEmailExists},
		{"weak password", Registration{"bob", "bob@example.com", "", "short"}, ErrWeakPassword},
		{"empty username", Registration{"", "bob@example.com", "", "password123"}, ErrInvalidUsername},
		{"username with spaces", Registration{"bob smith", "bob@example.com", "", "password123"}, ErrInvalidUsername},
		{"bad email", Registration{"bob", "not-an-email", "", "password123"}, ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Register(ctx, tt.reg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// claimedUsers reports every key as free but fails inserts with createErr,
// the way the store does when another registration commits first.
type claimedUsers struct {
	createErr error
}

func (c claimedUsers) CreateUser(context.Context, *models.User) error {
	return fmt.Errorf("failed to create user: %w", c.createErr)
}

func (claimedUsers) GetUserByUsername(context.Context, string) (*models.User, error) {
	return nil, storage.ErrNotFound
}

func (claimedUsers) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, storage.ErrNotFound
}

func TestRegister_ClaimedDuringInsert(t *testing.T) {
	reg := Registration{"carol", "carol@example.com", "", "password123"}
	tests := []struct {
		name      string
		createErr error
		wantErr   error
	}{
		{"username", storage.ErrUsernameTaken, ErrUsernameExists},
		{"email", storage.ErrEmailTaken, ErrEmailExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewPasswordAuthenticator(claimedUsers{tt.createErr}).WithCost(bcrypt.MinCost)
			_, err := a.Register(context.Background(), reg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("other store errors pass through", func(t *testing.T) {
		boom := errors.New("disk full")
		a := NewPasswordAuthenticator(claimedUsers{boom}).WithCost(bcrypt.MinCost)
		_, err := a.Register(context.Background(), reg)
		if !errors.Is(err, boom) || errors.Is(err, ErrUsernameExists) {
			t.Errorf("Register() error = %v, want wrapped %v", err, boom)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	a := newTestAuthenticator()
	ctx := context.Background()
	registered, err := a.Register(ctx, Registration{
		Username:   "Alice",
		Email:      "alice@example.com",
		Credential: "password123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"exact username", "Alice", "password123", nil},
		{"username in other case", "alice", "password123", nil},
		{"wrong password", "Alice", "password124", ErrInvalidCredentials},
		{"unknown user", "bob", "password123", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := a.Authenticate(ctx, tt.username, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && user.ID != registered.ID {
				t.Errorf("Authenticate() returned %s, want %s", user.ID, registered.ID)
			}
		})
	}
}
