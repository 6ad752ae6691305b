// Package digest sends a daily summary of each group's chores.
package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/choretracker/internal/calendar"
	"github.com/mmynk/choretracker/internal/models"
)

// Source is the read access the digest needs.
type Source interface {
	ListGroups(ctx context.Context) ([]*models.Group, error)
	ListEventsByGroup(ctx context.Context, groupID string) ([]models.Event, error)
}

// Compose builds the digest for the day now falls on. Each group's day is
// taken in the group's time zone when it has one. Groups with nothing
// scheduled are left out; the result is empty when no group has anything.
func Compose(ctx context.Context, source Source, now time.Time) (string, error) {
	groups, err := source.ListGroups(ctx)
	if err != nil {
		return "", fmt.Errorf("list groups: %w", err)
	}

	var sections []string
	for _, group := range groups {
		events, err := source.ListEventsByGroup(ctx, group.ID)
		if err != nil {
			return "", fmt.Errorf("list events for group %s: %w", group.ID, err)
		}
		today := calendar.FilterByDate(events, group.Today(now))
		if len(today) == 0 {
			continue
		}
		sections = append(sections, formatGroup(group, today))
	}
	if len(sections) == 0 {
		return "", nil
	}

	header := fmt.Sprintf("Chores for %s", now.Format("Monday, Jan 2"))
	return header + "\n\n" + strings.Join(sections, "\n\n"), nil
}

func formatGroup(group *models.Group, events []models.Event) string {
	var pending, done []string
	for _, e := range events {
		line := e.Name
		if len(e.Members) > 0 {
			line += " (" + strings.Join(e.Members, ", ") + ")"
		}
		if e.IsComplete {
			done = append(done, "  [x] "+line)
		} else {
			pending = append(pending, "  [ ] "+line)
		}
	}

	var b strings.Builder
	b.WriteString(group.Name)
	for _, line := range append(pending, done...) {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}
