package seed

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/stock2profit/internal/db"
	"github.com/vbonduro/stock2profit/internal/domain"
	"github.com/vbonduro/stock2profit/internal/store"
)

func TestLoadEmbeddedFixtures(t *testing.T) {
	f, err := Load()
	require.NoError(t, err)

	require.Len(t, f.Inventory, 7)
	assert.Equal(t, "ELC-001", f.Inventory[0].SKU)
	assert.Equal(t, "Premium Laptop", f.Inventory[0].Name)
	assert.Equal(t, 5, f.Inventory[0].Stock)
	assert.Equal(t, 1299.0, f.Inventory[0].Price)

	require.Len(t, f.Activity, 5)
	assert.Equal(t, domain.ActivityCanceled, f.Activity[4].Status)
	assert.Equal(t, "2024-03-13", f.Activity[4].OccurredOn)

	require.Len(t, f.Alerts, 3)
	assert.Equal(t, domain.AlertError, f.Alerts[1].Kind)
	assert.Equal(t, time.Hour, f.Alerts[1].Age)
	assert.Equal(t, "Invoice #8822 for ABC Corp is 3 days late", f.Alerts[1].Description)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("inventory: [unterminated"))
	assert.Error(t, err)
}

func newSeeder(t *testing.T) (*Seeder, *store.InventoryStore, *store.ActivityStore, *store.AlertStore) {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	inv := store.NewInventoryStore(d)
	act := store.NewActivityStore(d)
	alerts := store.NewAlertStore(d)
	return NewSeeder(inv, act, alerts, slog.Default()), inv, act, alerts
}

func TestApplySeedsEmptyTables(t *testing.T) {
	s, inv, act, alerts := newSeeder(t)
	fixed := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	f, err := Load()
	require.NoError(t, err)
	require.NoError(t, s.Apply(ctx, f))

	n, err := inv.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = act.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	recent, err := alerts.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "Low Stock: Premium Laptop", recent[0].Title)
	assert.True(t, recent[0].RaisedAt.Equal(fixed.Add(-10*time.Minute)))
}

func TestApplyIsIdempotent(t *testing.T) {
	s, inv, act, alerts := newSeeder(t)
	ctx := context.Background()

	f, err := Load()
	require.NoError(t, err)
	require.NoError(t, s.Apply(ctx, f))
	require.NoError(t, s.Apply(ctx, f))

	n, err := inv.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	n, err = act.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	n, err = alerts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestApplyLeavesExistingDataAlone(t *testing.T) {
	s, inv, _, _ := newSeeder(t)
	ctx := context.Background()

	_, err := inv.Create(ctx, domain.InventoryItem{SKU: "OWN-1", Name: "Own Product", Category: "Misc", Stock: 1, Price: 1})
	require.NoError(t, err)

	f, err := Load()
	require.NoError(t, err)
	require.NoError(t, s.Apply(ctx, f))

	items, err := inv.List(ctx, store.InventoryFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Own Product", items[0].Name)
}
