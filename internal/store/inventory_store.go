package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vbonduro/stock2profit/internal/domain"
)

// AllCategories is the category filter value that matches every item.
const AllCategories = "All"

// InventoryFilter narrows an inventory listing. Query matches name or SKU,
// case-insensitively; an empty Category or AllCategories matches any.
type InventoryFilter struct {
	Query    string
	Category string
}

type InventoryStore struct {
	db *sql.DB
}

func NewInventoryStore(db *sql.DB) *InventoryStore {
	return &InventoryStore{db: db}
}

const inventoryColumns = `id, sku, name, category, stock, price, created_at`

func (s *InventoryStore) Create(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory_items (sku, name, category, stock, price) VALUES (?, ?, ?, ?, ?)
	`, item.SKU, item.Name, item.Category, item.Stock, item.Price)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create inventory item %s: %w", item.SKU, ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *InventoryStore) GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+inventoryColumns+` FROM inventory_items WHERE id = ?
	`, id).Scan(&item.ID, &item.SKU, &item.Name, &item.Category, &item.Stock, &item.Price, &item.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	return item, nil
}

// List returns the items matching f in insertion order, which is the order
// products were catalogued in.
func (s *InventoryStore) List(ctx context.Context, f InventoryFilter) ([]*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE 1=1`
	var args []any

	if q := strings.TrimSpace(f.Query); q != "" {
		q = strings.ToLower(q)
		query += ` AND (instr(LOWER(name), ?) > 0 OR instr(LOWER(sku), ?) > 0)`
		args = append(args, q, q)
	}
	if f.Category != "" && f.Category != AllCategories {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	query += ` ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	defer closeRows(rows)

	var items []*domain.InventoryItem
	for rows.Next() {
		item := &domain.InventoryItem{}
		if err := rows.Scan(&item.ID, &item.SKU, &item.Name, &item.Category, &item.Stock, &item.Price, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory items: %w", err)
	}

	return items, nil
}

// Categories returns the distinct categories in alphabetical order.
func (s *InventoryStore) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT category FROM inventory_items ORDER BY category ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer closeRows(rows)

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (s *InventoryStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count inventory items: %w", err)
	}
	return n, nil
}

// CountBelow counts items whose stock is strictly under threshold.
func (s *InventoryStore) CountBelow(ctx context.Context, threshold int) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM inventory_items WHERE stock < ?
	`, threshold).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count low stock items: %w", err)
	}
	return n, nil
}

func (s *InventoryStore) UpdateStock(ctx context.Context, id int64, stock int) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE inventory_items SET stock = ? WHERE id = ?
	`, stock, id)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("inventory item %d: %w", id, ErrNotFound)
	}

	return nil
}
