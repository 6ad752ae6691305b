package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/choretracker/internal/models"
)

const groupColumns = "id, name, status, expiration, timezone, creator, created_at"

// CreateGroup persists a new group and its members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	if group.Status == "" {
		group.Status = models.GroupStatusActive
	}

	var expiration sql.NullInt64
	if group.Expiration != nil {
		expiration = sql.NullInt64{Int64: group.Expiration.Unix(), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups ("+groupColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		group.ID, group.Name, group.Status, expiration, group.Timezone, group.Creator, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	if err := insertGroupMembers(ctx, tx, group.ID, group.Members); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertGroupMembers(ctx context.Context, q querier, groupID string, usernames []string) error {
	for _, username := range usernames {
		_, err := q.ExecContext(ctx,
			"INSERT OR IGNORE INTO group_members (group_id, username) VALUES (?, ?)",
			groupID, username,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}
	return nil
}

func scanGroup(row rowScanner) (*models.Group, error) {
	group := &models.Group{}
	var expiration sql.NullInt64
	err := row.Scan(
		&group.ID,
		&group.Name,
		&group.Status,
		&expiration,
		&group.Timezone,
		&group.Creator,
		&group.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if expiration.Valid {
		t := time.Unix(expiration.Int64, 0).UTC()
		group.Expiration = &t
	}
	return group, nil
}

// groupMembers returns the group's members in the order they joined.
func groupMembers(ctx context.Context, q querier, groupID string) ([]string, error) {
	members, err := queryStrings(ctx, q,
		"SELECT username FROM group_members WHERE group_id = ? ORDER BY rowid",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	return members, nil
}

// GetGroup retrieves a group by ID, including its members.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group, err := scanGroup(s.db.QueryRowContext(ctx,
		"SELECT "+groupColumns+" FROM groups WHERE id = ?", groupID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("group", groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	group.Members, err = groupMembers(ctx, s.db, groupID)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroups returns every group, oldest first.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.listGroups(ctx,
		"SELECT "+groupColumns+" FROM groups ORDER BY created_at, id",
	)
}

// ListGroupsForMember returns the groups username belongs to, oldest first.
func (s *SQLiteStore) ListGroupsForMember(ctx context.Context, username string) ([]*models.Group, error) {
	return s.listGroups(ctx, `
		SELECT g.id, g.name, g.status, g.expiration, g.timezone, g.creator, g.created_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.username = ?
		ORDER BY g.created_at, g.id`,
		username,
	)
}

func (s *SQLiteStore) listGroups(ctx context.Context, query string, args ...any) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	// Members are loaded after the group rows are closed so the query does
	// not hold a second connection.
	for _, group := range groups {
		group.Members, err = groupMembers(ctx, s.db, group.ID)
		if err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// AddGroupMembers adds usernames to an existing group.
// Usernames that are already members are ignored.
func (s *SQLiteStore) AddGroupMembers(ctx context.Context, groupID string, usernames []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE id = ?", groupID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("group", groupID)
	}
	if err != nil {
		return fmt.Errorf("failed to check group: %w", err)
	}

	if err := insertGroupMembers(ctx, tx, groupID, usernames); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteGroup removes a group. Members, events and costs are removed by
// cascading foreign keys.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return requireAffected(res, "group", groupID)
}

// requireAffected returns a not-found error when res touched no rows.
func requireAffected(res sql.Result, kind, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return notFound(kind, key)
	}
	return nil
}
