package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/choretracker/internal/metrics"
	"github.com/mmynk/choretracker/internal/models"
	"github.com/mmynk/choretracker/internal/recurrence"
)

const eventColumns = "id, group_id, name, first_at, repeat_every, is_complete, created_at"

// CreateEvent persists a new event with its members and, if given, the
// cost created alongside it.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event *models.Event, cost *models.Cost) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt == 0 {
		event.CreatedAt = time.Now().Unix()
	}
	if !event.Repeat.Valid() {
		return fmt.Errorf("failed to insert event: %w", recurrence.ErrUnknownRule)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO events ("+eventColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		event.ID, event.GroupID, event.Name, event.FirstDate.Format(time.DateTime),
		event.Repeat.String(), event.IsComplete, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	if err := insertEventMembers(ctx, tx, event.ID, event.Members); err != nil {
		return err
	}

	if cost != nil {
		cost.GroupID = event.GroupID
		cost.EventID = event.ID
		if err := insertCost(ctx, tx, cost); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertEventMembers(ctx context.Context, q querier, eventID string, members []string) error {
	for _, username := range members {
		_, err := q.ExecContext(ctx,
			"INSERT OR IGNORE INTO event_members (event_id, username) VALUES (?, ?)",
			eventID, username,
		)
		if err != nil {
			return fmt.Errorf("failed to insert event member: %w", err)
		}
	}
	return nil
}

func scanEvent(row rowScanner) (*models.Event, error) {
	event := &models.Event{}
	var firstAt, repeat string
	err := row.Scan(
		&event.ID,
		&event.GroupID,
		&event.Name,
		&firstAt,
		&repeat,
		&event.IsComplete,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.FirstDate, err = recurrence.ParseDate(firstAt)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", event.ID, err)
	}

	event.Repeat, err = recurrence.ParseRule(repeat)
	if err != nil {
		slog.Warn("Stored event has an unrecognized repeat rule",
			"event_id", event.ID,
			"repeat", repeat,
		)
		metrics.UnrecognizedRepeatRules.Inc()
	}
	return event, nil
}

func eventMembers(ctx context.Context, q querier, eventID string) ([]string, error) {
	members, err := queryStrings(ctx, q,
		"SELECT username FROM event_members WHERE event_id = ? ORDER BY username",
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get event members: %w", err)
	}
	return members, nil
}

// GetEvent retrieves an event by ID, including its members.
func (s *SQLiteStore) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	event, err := scanEvent(s.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id = ?", eventID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("event", eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	event.Members, err = eventMembers(ctx, s.db, eventID)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// ListEventsByGroup returns the group's events ordered by first date.
func (s *SQLiteStore) ListEventsByGroup(ctx context.Context, groupID string) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE group_id = ? ORDER BY first_at, created_at, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *event)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	for i := range events {
		events[i].Members, err = eventMembers(ctx, s.db, events[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return events, nil
}

// UpdateEvent overwrites the event's name, first date, repeat rule and members.
func (s *SQLiteStore) UpdateEvent(ctx context.Context, event *models.Event) error {
	if !event.Repeat.Valid() {
		return fmt.Errorf("failed to update event: %w", recurrence.ErrUnknownRule)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE events SET name = ?, first_at = ?, repeat_every = ? WHERE id = ?",
		event.Name, event.FirstDate.Format(time.DateTime), event.Repeat.String(), event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if err := requireAffected(res, "event", event.ID); err != nil {
		return err
	}

	if err := replaceEventMembers(ctx, tx, event.ID, event.Members); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func replaceEventMembers(ctx context.Context, q querier, eventID string, members []string) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM event_members WHERE event_id = ?", eventID); err != nil {
		return fmt.Errorf("failed to clear event members: %w", err)
	}
	return insertEventMembers(ctx, q, eventID, members)
}

// SetEventMembers replaces the set of members assigned to an event.
func (s *SQLiteStore) SetEventMembers(ctx context.Context, eventID string, members []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM events WHERE id = ?", eventID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("event", eventID)
	}
	if err != nil {
		return fmt.Errorf("failed to check event: %w", err)
	}

	if err := replaceEventMembers(ctx, tx, eventID, members); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SetEventComplete records whether the event has been done.
func (s *SQLiteStore) SetEventComplete(ctx context.Context, eventID string, complete bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE events SET is_complete = ? WHERE id = ?", complete, eventID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return requireAffected(res, "event", eventID)
}

// DeleteEvent removes an event. Costs created with it are kept and lose
// their event link.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, eventID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return requireAffected(res, "event", eventID)
}
