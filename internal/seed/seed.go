// Package seed loads the sample inventory, activity feed and alerts that a
// fresh install shows on its dashboard screens.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vbonduro/stock2profit/internal/domain"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type Fixtures struct {
	Inventory []domain.InventoryItem `yaml:"inventory"`
	Activity  []domain.Activity      `yaml:"activity"`
	Alerts    []AlertFixture         `yaml:"alerts"`
}

// AlertFixture is an alert whose raise time is relative to when it is seeded.
type AlertFixture struct {
	domain.Alert `yaml:",inline"`
	Age          time.Duration `yaml:"age"`
}

// Load parses the embedded fixtures.
func Load() (*Fixtures, error) {
	return Parse(fixturesYAML)
}

func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &f, nil
}

type inventoryRepository interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error)
}

type activityRepository interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, a domain.Activity) (*domain.Activity, error)
}

type alertRepository interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, a domain.Alert) (*domain.Alert, error)
}

type Seeder struct {
	inventory inventoryRepository
	activity  activityRepository
	alerts    alertRepository
	now       func() time.Time
	logger    *slog.Logger
}

func NewSeeder(inventory inventoryRepository, activity activityRepository, alerts alertRepository, logger *slog.Logger) *Seeder {
	return &Seeder{
		inventory: inventory,
		activity:  activity,
		alerts:    alerts,
		now:       time.Now,
		logger:    logger,
	}
}

// Apply inserts each fixture group whose table is still empty, so running it
// on every start never duplicates or overwrites real data.
func (s *Seeder) Apply(ctx context.Context, f *Fixtures) error {
	if n, err := s.inventory.Count(ctx); err != nil {
		return err
	} else if n == 0 {
		for _, item := range f.Inventory {
			if _, err := s.inventory.Create(ctx, item); err != nil {
				return fmt.Errorf("failed to seed inventory %s: %w", item.SKU, err)
			}
		}
		s.logger.Info("seeded inventory", "items", len(f.Inventory))
	}

	if n, err := s.activity.Count(ctx); err != nil {
		return err
	} else if n == 0 {
		for _, a := range f.Activity {
			if _, err := s.activity.Create(ctx, a); err != nil {
				return fmt.Errorf("failed to seed activity for %s: %w", a.Customer, err)
			}
		}
		s.logger.Info("seeded activity", "entries", len(f.Activity))
	}

	if n, err := s.alerts.Count(ctx); err != nil {
		return err
	} else if n == 0 {
		now := s.now()
		for _, a := range f.Alerts {
			alert := a.Alert
			alert.RaisedAt = now.Add(-a.Age)
			if _, err := s.alerts.Create(ctx, alert); err != nil {
				return fmt.Errorf("failed to seed alert %q: %w", a.Title, err)
			}
		}
		s.logger.Info("seeded alerts", "alerts", len(f.Alerts))
	}

	return nil
}
