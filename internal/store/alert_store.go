package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vbonduro/stock2profit/internal/domain"
)

type AlertStore struct {
	db *sql.DB
}

func NewAlertStore(db *sql.DB) *AlertStore {
	return &AlertStore{db: db}
}

// Create stores an alert. A zero RaisedAt means now.
func (s *AlertStore) Create(ctx context.Context, a domain.Alert) (*domain.Alert, error) {
	if a.RaisedAt.IsZero() {
		a.RaisedAt = time.Now()
	}
	a.RaisedAt = a.RaisedAt.UTC().Truncate(time.Second)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (title, description, kind, raised_at) VALUES (?, ?, ?, ?)
	`, a.Title, a.Description, string(a.Kind), a.RaisedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	a.ID = id
	return &a, nil
}

// ListRecent returns up to limit alerts, most recently raised first.
func (s *AlertStore) ListRecent(ctx context.Context, limit int) ([]*domain.Alert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, kind, raised_at FROM alerts
		ORDER BY raised_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer closeRows(rows)

	var alerts []*domain.Alert
	for rows.Next() {
		a := &domain.Alert{}
		var kind string
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &kind, &a.RaisedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		a.Kind = domain.AlertKind(kind)
		alerts = append(alerts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alerts: %w", err)
	}

	return alerts, nil
}

func (s *AlertStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alerts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count alerts: %w", err)
	}
	return n, nil
}
