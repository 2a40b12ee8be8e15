package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/stock2profit/internal/domain"
)

func TestAlertStoreCreateAndListRecent(t *testing.T) {
	s := NewAlertStore(openTestDB(t))
	ctx := context.Background()
	now := time.Now()

	_, err := s.Create(ctx, domain.Alert{Title: "Supply Arrival", Kind: domain.AlertInfo, RaisedAt: now.Add(-2 * time.Hour)})
	require.NoError(t, err)
	_, err = s.Create(ctx, domain.Alert{Title: "Low Stock: Premium Laptop", Kind: domain.AlertWarning, RaisedAt: now.Add(-10 * time.Minute)})
	require.NoError(t, err)
	_, err = s.Create(ctx, domain.Alert{Title: "Payment Overdue", Kind: domain.AlertError, RaisedAt: now.Add(-time.Hour)})
	require.NoError(t, err)

	alerts, err := s.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, "Low Stock: Premium Laptop", alerts[0].Title)
	assert.Equal(t, domain.AlertWarning, alerts[0].Kind)
	assert.Equal(t, "Payment Overdue", alerts[1].Title)
	assert.Equal(t, "Supply Arrival", alerts[2].Title)
	assert.WithinDuration(t, now.Add(-10*time.Minute), alerts[0].RaisedAt, 2*time.Second)
}

func TestAlertStoreCreate_DefaultsRaisedAt(t *testing.T) {
	s := NewAlertStore(openTestDB(t))

	a, err := s.Create(context.Background(), domain.Alert{Title: "Now", Kind: domain.AlertInfo})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), a.RaisedAt, 2*time.Second)
}
