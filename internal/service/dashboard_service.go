package service

import (
	"context"
	"fmt"

	"github.com/vbonduro/stock2profit/internal/domain"
)

const (
	recentActivityLimit = 5
	recentAlertLimit    = 3
)

// activityRepository is the subset of store.ActivityStore that the services require.
type activityRepository interface {
	Create(ctx context.Context, a domain.Activity) (*domain.Activity, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Activity, error)
	Totals(ctx context.Context) (revenue float64, orders int, err error)
}

// alertRepository is the subset of store.AlertStore that DashboardService requires.
type alertRepository interface {
	ListRecent(ctx context.Context, limit int) ([]*domain.Alert, error)
}

// stockCounter is the subset of store.InventoryStore that DashboardService requires.
type stockCounter interface {
	Count(ctx context.Context) (int, error)
	CountBelow(ctx context.Context, threshold int) (int, error)
}

// Summary is everything the dashboard view shows.
type Summary struct {
	Revenue         float64
	Orders          int
	ActiveInventory int
	LowStock        int
	Activity        []*domain.Activity
	Alerts          []*domain.Alert
}

type DashboardService struct {
	inventory         stockCounter
	activity          activityRepository
	alerts            alertRepository
	lowStockThreshold int
}

func NewDashboardService(inventory stockCounter, activity activityRepository, alerts alertRepository, lowStockThreshold int) *DashboardService {
	return &DashboardService{
		inventory:         inventory,
		activity:          activity,
		alerts:            alerts,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *DashboardService) Summary(ctx context.Context) (*Summary, error) {
	revenue, orders, err := s.activity.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total sales: %w", err)
	}

	active, err := s.inventory.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count inventory: %w", err)
	}

	low, err := s.inventory.CountBelow(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to count low stock: %w", err)
	}

	activity, err := s.activity.ListRecent(ctx, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent activity: %w", err)
	}

	alerts, err := s.alerts.ListRecent(ctx, recentAlertLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	return &Summary{
		Revenue:         revenue,
		Orders:          orders,
		ActiveInventory: active,
		LowStock:        low,
		Activity:        activity,
		Alerts:          alerts,
	}, nil
}
