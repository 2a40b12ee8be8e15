package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vbonduro/stock2profit/internal/domain"
	"github.com/vbonduro/stock2profit/internal/money"
	"github.com/vbonduro/stock2profit/internal/store"
)

var (
	ErrProductName     = errors.New("product name is required")
	ErrProductSKU      = errors.New("SKU is required")
	ErrProductCategory = errors.New("category is required")
	ErrProductStock    = errors.New("stock cannot be negative")
	ErrProductPrice    = errors.New("price cannot be negative")
	ErrSKUTaken        = errors.New("a product with this SKU already exists")
	ErrProductNotFound = errors.New("product not found")
)

// inventoryRepository is the subset of store.InventoryStore that InventoryService requires.
type inventoryRepository interface {
	Create(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error)
	List(ctx context.Context, f store.InventoryFilter) ([]*domain.InventoryItem, error)
	Categories(ctx context.Context) ([]string, error)
	UpdateStock(ctx context.Context, id int64, stock int) error
}

type InventoryService struct {
	inventory         inventoryRepository
	lowStockThreshold int
}

func NewInventoryService(inventory inventoryRepository, lowStockThreshold int) *InventoryService {
	return &InventoryService{inventory: inventory, lowStockThreshold: lowStockThreshold}
}

func (s *InventoryService) LowStockThreshold() int { return s.lowStockThreshold }

func (s *InventoryService) Search(ctx context.Context, f store.InventoryFilter) ([]*domain.InventoryItem, error) {
	f.Query = strings.TrimSpace(f.Query)
	return s.inventory.List(ctx, f)
}

// Categories lists the category filter options, AllCategories first.
func (s *InventoryService) Categories(ctx context.Context) ([]string, error) {
	cats, err := s.inventory.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string{store.AllCategories}, cats...), nil
}

func (s *InventoryService) CreateProduct(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	item.SKU = strings.ToUpper(strings.TrimSpace(item.SKU))
	item.Category = strings.TrimSpace(item.Category)

	switch {
	case item.Name == "":
		return nil, ErrProductName
	case item.SKU == "":
		return nil, ErrProductSKU
	case item.Category == "":
		return nil, ErrProductCategory
	case item.Stock < 0:
		return nil, ErrProductStock
	case item.Price < 0:
		return nil, ErrProductPrice
	}

	created, err := s.inventory.Create(ctx, item)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, ErrSKUTaken
	}
	return created, err
}

// Restock sets the stock level of an existing product.
func (s *InventoryService) Restock(ctx context.Context, id int64, stock int) error {
	if stock < 0 {
		return ErrProductStock
	}
	err := s.inventory.UpdateStock(ctx, id, stock)
	if errors.Is(err, store.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

var csvHeader = []string{"SKU", "Name", "Category", "Stock", "Price", "Status"}

// ExportCSV writes the items matching f as CSV, one row per item.
func (s *InventoryService) ExportCSV(ctx context.Context, w io.Writer, f store.InventoryFilter) error {
	items, err := s.Search(ctx, f)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, it := range items {
		status := "In Stock"
		if it.LowStock(s.lowStockThreshold) {
			status = "Low Stock"
		}
		row := []string{
			it.SKU,
			it.Name,
			it.Category,
			strconv.Itoa(it.Stock),
			money.Fixed(it.Price, 2),
			status,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
