package models

import (
	"time"

	"github.com/mmynk/choretracker/internal/recurrence"
)

// Event is a chore or appointment scheduled within a group.
type Event struct {
	// ID is the unique identifier for the event (UUID format).
	ID string

	// GroupID is the group the event belongs to.
	GroupID string

	// Name is the short description shown on calendars (e.g., "Take out trash").
	Name string

	// FirstDate is the first occurrence. The time-of-day is kept for display;
	// occurrence matching only looks at the calendar day.
	FirstDate time.Time

	// Repeat is how the event repeats after FirstDate.
	Repeat recurrence.Rule

	// IsComplete is set when a member marks the event done.
	IsComplete bool

	// Members are the usernames the event is assigned to. Unique, unordered.
	Members []string

	// CreatedAt is the Unix timestamp when the event was created.
	CreatedAt int64
}

// AssignedTo reports whether the event is assigned to username.
func (e *Event) AssignedTo(username string) bool {
	for _, m := range e.Members {
		if m == username {
			return true
		}
	}
	return false
}
