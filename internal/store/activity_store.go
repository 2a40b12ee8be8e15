package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vbonduro/stock2profit/internal/domain"
)

type ActivityStore struct {
	db *sql.DB
}

func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

func (s *ActivityStore) Create(ctx context.Context, a domain.Activity) (*domain.Activity, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO activities (customer, product, amount, status, occurred_on) VALUES (?, ?, ?, ?, ?)
	`, a.Customer, a.Product, a.Amount, string(a.Status), a.OccurredOn)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	created := a
	created.ID = id
	return &created, nil
}

// ListRecent returns up to limit entries, newest first.
func (s *ActivityStore) ListRecent(ctx context.Context, limit int) ([]*domain.Activity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer, product, amount, status, occurred_on, created_at FROM activities
		ORDER BY occurred_on DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer closeRows(rows)

	var activities []*domain.Activity
	for rows.Next() {
		a := &domain.Activity{}
		var status string
		if err := rows.Scan(&a.ID, &a.Customer, &a.Product, &a.Amount, &status, &a.OccurredOn, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Status = domain.ActivityStatus(status)
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	return activities, nil
}

// Totals returns the revenue of completed sales and the number of orders of
// any status.
func (s *ActivityStore) Totals(ctx context.Context) (revenue float64, orders int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN status = 'Completed' THEN amount END), 0), COUNT(*) FROM activities
	`).Scan(&revenue, &orders)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to total activities: %w", err)
	}
	return revenue, orders, nil
}

func (s *ActivityStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return n, nil
}
