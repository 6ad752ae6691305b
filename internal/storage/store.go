// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/choretracker/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrUsernameTaken and ErrEmailTaken are returned (wrapped) by CreateUser
// when another account already holds the username or email.
var (
	ErrUsernameTaken = errors.New("username taken")
	ErrEmailTaken    = errors.New("email taken")
)

// Store defines the persistence operations used by the services.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	UserStore
	GroupStore
	EventStore
	CostStore

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByUsername matches usernames case-insensitively.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)

	// GetUsersByUsernames returns the users that exist, keyed by their
	// stored username. Unknown usernames are omitted.
	GetUsersByUsernames(ctx context.Context, usernames []string) (map[string]*models.User, error)
}

// GroupStore persists groups and their membership.
type GroupStore interface {
	// CreateGroup persists a new group with its members.
	// ID and CreatedAt are populated by the store when empty.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]*models.Group, error)
	ListGroupsForMember(ctx context.Context, username string) ([]*models.Group, error)

	// AddGroupMembers adds usernames to the group, ignoring existing members.
	AddGroupMembers(ctx context.Context, groupID string, usernames []string) error
	DeleteGroup(ctx context.Context, groupID string) error
}

// EventStore persists events.
type EventStore interface {
	// CreateEvent persists a new event and, when cost is non-nil, the cost
	// attached to it, in a single transaction.
	CreateEvent(ctx context.Context, event *models.Event, cost *models.Cost) error
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)

	// UpdateEvent replaces name, first date, repeat rule and members.
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, eventID string) error

	// ListEventsByGroup returns the group's events ordered by first date.
	ListEventsByGroup(ctx context.Context, groupID string) ([]models.Event, error)
	SetEventMembers(ctx context.Context, eventID string, members []string) error
	SetEventComplete(ctx context.Context, eventID string, complete bool) error
}

// CostStore persists costs and their shares.
type CostStore interface {
	CreateCost(ctx context.Context, cost *models.Cost) error
	GetCost(ctx context.Context, costID string) (*models.Cost, error)
	ListCostsByGroup(ctx context.Context, groupID string) ([]*models.Cost, error)
	ListCostsByEvent(ctx context.Context, eventID string) ([]*models.Cost, error)
}
