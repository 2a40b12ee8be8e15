package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vbonduro/stock2profit/internal/domain"
)

type TransactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

// Create stores the transaction header and its lines atomically. Line
// positions are assigned from slice order.
func (s *TransactionStore) Create(ctx context.Context, t domain.Transaction) (*domain.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (customer, email, total, created_by) VALUES (?, ?, ?, ?)
	`, t.Customer, t.Email, t.Total, t.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	for i, line := range t.Lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO transaction_lines (transaction_id, position, product, quantity, rate, amount)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, i+1, line.Product, line.Quantity, line.Rate, line.Amount)
		if err != nil {
			return nil, fmt.Errorf("failed to create transaction line %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID returns the transaction with its lines, or nil when absent.
func (s *TransactionStore) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, customer, email, total, receipt_key, created_by, created_at FROM transactions WHERE id = ?
	`, id).Scan(&t.ID, &t.Customer, &t.Email, &t.Total, &t.ReceiptKey, &t.CreatedBy, &t.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	lines, err := s.listLines(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Lines = lines

	return t, nil
}

func (s *TransactionStore) listLines(ctx context.Context, transactionID int64) ([]domain.TransactionLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, product, quantity, rate, amount FROM transaction_lines
		WHERE transaction_id = ? ORDER BY position ASC
	`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction lines: %w", err)
	}
	defer closeRows(rows)

	var lines []domain.TransactionLine
	for rows.Next() {
		var l domain.TransactionLine
		if err := rows.Scan(&l.Position, &l.Product, &l.Quantity, &l.Rate, &l.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan transaction line: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction lines: %w", err)
	}

	return lines, nil
}

func (s *TransactionStore) SetReceiptKey(ctx context.Context, id int64, key string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET receipt_key = ? WHERE id = ?
	`, key, id)
	if err != nil {
		return fmt.Errorf("failed to set receipt key: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}

	return nil
}
