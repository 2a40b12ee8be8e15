package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/stock2profit/internal/navigator"
)

func TestWithCreatesWorkspaceOnFirstUse(t *testing.T) {
	r := NewRegistry()

	err := r.With(1, func(ws *Workspace) error {
		assert.Equal(t, navigator.Landing, ws.Navigator.Current())
		assert.Zero(t, ws.Draft.Len())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())
}

func TestWorkspacePersistsAcrossCalls(t *testing.T) {
	r := NewRegistry()

	_ = r.With(1, func(ws *Workspace) error {
		ws.Navigator.Navigate(navigator.Sales)
		_, ok := ws.Draft.AddLineItem("Widget", 2, 5)
		assert.True(t, ok)
		return nil
	})

	_ = r.With(1, func(ws *Workspace) error {
		assert.Equal(t, navigator.Sales, ws.Navigator.Current())
		assert.Equal(t, 10.0, ws.Draft.GrandTotal())
		return nil
	})
}

func TestWorkspacesAreIsolatedPerUser(t *testing.T) {
	r := NewRegistry()

	_ = r.With(1, func(ws *Workspace) error {
		ws.Navigator.Navigate(navigator.Reports)
		return nil
	})
	_ = r.With(2, func(ws *Workspace) error {
		assert.Equal(t, navigator.Landing, ws.Navigator.Current())
		return nil
	})
}

func TestWithReturnsCallbackError(t *testing.T) {
	r := NewRegistry()
	want := assert.AnError
	assert.Equal(t, want, r.With(1, func(*Workspace) error { return want }))
}

func TestDrop(t *testing.T) {
	r := NewRegistry()
	_ = r.With(1, func(ws *Workspace) error {
		_, _ = ws.Draft.AddLineItem("Widget", 1, 1)
		return nil
	})

	r.Drop(1)
	assert.Zero(t, r.Len())

	_ = r.With(1, func(ws *Workspace) error {
		assert.Zero(t, ws.Draft.Len())
		return nil
	})
}

func TestPurgeRemovesIdleWorkspaces(t *testing.T) {
	r := NewRegistry()
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	_ = r.With(1, func(*Workspace) error { return nil })
	now = now.Add(30 * time.Minute)
	_ = r.With(2, func(*Workspace) error { return nil })
	now = now.Add(45 * time.Minute)

	assert.Equal(t, 1, r.Purge(time.Hour))
	assert.Equal(t, 1, r.Len())

	_ = r.With(2, func(ws *Workspace) error {
		assert.NotNil(t, ws)
		return nil
	})
	assert.Zero(t, r.Purge(time.Hour))
}

func TestStartPurgeStopsOnCancel(t *testing.T) {
	r := NewRegistry()
	now := time.Now()
	r.now = func() time.Time { return now }
	_ = r.With(1, func(*Workspace) error { return nil })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.StartPurge(ctx, -time.Second, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestConcurrentAccessToSameWorkspace(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.With(1, func(ws *Workspace) error {
				_, _ = ws.Draft.AddLineItem("Widget", 1, 2)
				return nil
			})
		}()
	}
	wg.Wait()

	_ = r.With(1, func(ws *Workspace) error {
		assert.Equal(t, 50, ws.Draft.Len())
		assert.Equal(t, 100.0, ws.Draft.GrandTotal())
		return nil
	})
}
