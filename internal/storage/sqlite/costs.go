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

const costColumns = "id, group_id, event_id, name, category, amount, payer, created_at"

// CreateCost persists a standalone cost and its shares.
func (s *SQLiteStore) CreateCost(ctx context.Context, cost *models.Cost) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertCost(ctx, tx, cost); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertCost(ctx context.Context, q querier, cost *models.Cost) error {
	if cost.ID == "" {
		cost.ID = uuid.New().String()
	}
	if cost.CreatedAt == 0 {
		cost.CreatedAt = time.Now().Unix()
	}

	var eventID any
	if cost.EventID != "" {
		eventID = cost.EventID
	}

	_, err := q.ExecContext(ctx,
		"INSERT INTO costs ("+costColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		cost.ID, cost.GroupID, eventID, cost.Name, cost.Category,
		cost.Amount.StringFixed(2), cost.Payer, cost.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cost: %w", err)
	}

	for i, share := range cost.Shares {
		_, err := q.ExecContext(ctx,
			"INSERT INTO cost_shares (cost_id, position, member, amount) VALUES (?, ?, ?, ?)",
			cost.ID, i, share.Member, share.Amount.StringFixed(2),
		)
		if err != nil {
			return fmt.Errorf("failed to insert cost share: %w", err)
		}
	}
	return nil
}

func scanCost(row rowScanner) (*models.Cost, error) {
	cost := &models.Cost{}
	var eventID sql.NullString
	err := row.Scan(
		&cost.ID,
		&cost.GroupID,
		&eventID,
		&cost.Name,
		&cost.Category,
		&cost.Amount,
		&cost.Payer,
		&cost.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	cost.EventID = eventID.String
	return cost, nil
}

func costShares(ctx context.Context, q querier, costID string) ([]models.CostShare, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT member, amount FROM cost_shares WHERE cost_id = ? ORDER BY position",
		costID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get cost shares: %w", err)
	}
	defer rows.Close()

	var shares []models.CostShare
	for rows.Next() {
		var share models.CostShare
		if err := rows.Scan(&share.Member, &share.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan cost share: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cost shares: %w", err)
	}
	return shares, nil
}

// GetCost retrieves a cost by ID, including its shares.
func (s *SQLiteStore) GetCost(ctx context.Context, costID string) (*models.Cost, error) {
	cost, err := scanCost(s.db.QueryRowContext(ctx,
		"SELECT "+costColumns+" FROM costs WHERE id = ?", costID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("cost", costID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cost: %w", err)
	}

	cost.Shares, err = costShares(ctx, s.db, costID)
	if err != nil {
		return nil, err
	}
	return cost, nil
}

// ListCostsByGroup retrieves all costs for a group, newest first.
func (s *SQLiteStore) ListCostsByGroup(ctx context.Context, groupID string) ([]*models.Cost, error) {
	return s.listCosts(ctx,
		"SELECT "+costColumns+" FROM costs WHERE group_id = ? ORDER BY created_at DESC, rowid DESC",
		groupID,
	)
}

// ListCostsByEvent retrieves the costs attached to an event, newest first.
func (s *SQLiteStore) ListCostsByEvent(ctx context.Context, eventID string) ([]*models.Cost, error) {
	return s.listCosts(ctx,
		"SELECT "+costColumns+" FROM costs WHERE event_id = ? ORDER BY created_at DESC, rowid DESC",
		eventID,
	)
}

func (s *SQLiteStore) listCosts(ctx context.Context, query string, args ...any) ([]*models.Cost, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list costs: %w", err)
	}

	var costs []*models.Cost
	for rows.Next() {
		cost, err := scanCost(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan cost: %w", err)
		}
		costs = append(costs, cost)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate costs: %w", err)
	}

	for _, cost := range costs {
		cost.Shares, err = costShares(ctx, s.db, cost.ID)
		if err != nil {
			return nil, err
		}
	}
	return costs, nil
}
