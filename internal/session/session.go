// Package session keeps the per-user dashboard state between requests: which
// view is on display and the sales draft being built.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vbonduro/stock2profit/internal/navigator"
	"github.com/vbonduro/stock2profit/internal/sales"
)

// Workspace is the in-memory state of one signed-in user.
type Workspace struct {
	Navigator *navigator.Navigator
	Draft     *sales.Draft
}

func newWorkspace() *Workspace {
	return &Workspace{
		Navigator: navigator.New(),
		Draft:     sales.NewDraft(),
	}
}

type entry struct {
	ws       *Workspace
	lastSeen time.Time
	mu       sync.Mutex
}

// Registry maps user ids to workspaces. A workspace is created on first use
// and dropped once it has been idle for longer than the purge TTL.
type Registry struct {
	mu      sync.Mutex
	entries map[int64]*entry
	now     func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[int64]*entry),
		now:     time.Now,
	}
}

// With runs fn with exclusive access to the user's workspace. Navigator and
// Draft are not safe for concurrent use, so fn must not retain ws.
func (r *Registry) With(userID int64, fn func(ws *Workspace) error) error {
	e := r.acquire(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.ws)
}

func (r *Registry) acquire(userID int64) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[userID]
	if !ok {
		e = &entry{ws: newWorkspace()}
		r.entries[userID] = e
	}
	e.lastSeen = r.now()
	return e
}

// Drop forgets the user's workspace, discarding any unsubmitted draft.
func (r *Registry) Drop(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, userID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Purge removes workspaces idle for longer than ttl and returns how many
// were removed.
func (r *Registry) Purge(ttl time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-ttl)
	removed := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// StartPurge runs Purge every interval until ctx is cancelled.
func (r *Registry) StartPurge(ctx context.Context, ttl, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.Purge(ttl); n > 0 {
					slog.Info("purged idle workspaces", "count", n)
				}
			}
		}
	}()
}
