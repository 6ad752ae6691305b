package models

import (
	"strings"
	"time"

	"github.com/mmynk/choretracker/internal/recurrence"
)

// Group statuses.
const (
	GroupStatusActive   = "active"
	GroupStatusArchived = "archived"
)

// Group is a set of users who share events and costs.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates").
	Name string

	// Status is either GroupStatusActive or GroupStatusArchived.
	Status string

	// Expiration is set for temporary groups only.
	Expiration *time.Time

	// Timezone is the IANA zone the group's events are scheduled in.
	Timezone string

	// Creator is the username of the member who created the group.
	Creator string

	// Members are the usernames of everyone in the group, creator included.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether username belongs to the group, ignoring case.
func (g *Group) HasMember(username string) bool {
	_, ok := g.Member(username)
	return ok
}

// Member returns the stored spelling of username if it belongs to the group.
func (g *Group) Member(username string) (string, bool) {
	for _, m := range g.Members {
		if strings.EqualFold(m, username) {
			return m, true
		}
	}
	return "", false
}

// Today returns the calendar day now falls on in the group's time zone.
// Without a loadable time zone, now is used as given.
func (g *Group) Today(now time.Time) time.Time {
	if g.Timezone != "" {
		if loc, err := time.LoadLocation(g.Timezone); err == nil {
			now = now.In(loc)
		}
	}
	return recurrence.Date(now)
}
