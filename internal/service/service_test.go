package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vbonduro/stock2profit/internal/db"
	"github.com/vbonduro/stock2profit/internal/filestore"
)

// stubFileStore is a minimal in-memory filestore.FileStore for tests.
type stubFileStore struct {
	mu      sync.Mutex
	saved   map[string][]byte
	saveErr error
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{saved: make(map[string][]byte)}
}

func (s *stubFileStore) Save(_ context.Context, prefix, _ string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, _ := io.ReadAll(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	key := prefix + ".pdf"
	s.saved[key] = data
	return key, nil
}

func (s *stubFileStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.saved[key]
	if !ok {
		return nil, "", filestore.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), "application/pdf", nil
}

func (s *stubFileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.saved[key]; !ok {
		return filestore.ErrNotFound
	}
	delete(s.saved, key)
	return nil
}

func (s *stubFileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

var errStub = errors.New("stub failure")

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func csvLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
