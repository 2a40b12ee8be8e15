// Package filestore persists generated documents such as sale receipts.
package filestore

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("file not found")

type FileStore interface {
	// Save writes r under a new key beginning with prefix and returns the key.
	Save(ctx context.Context, prefix, mimeType string, r io.Reader) (key string, err error)
	// Get opens the file stored under key and reports its mime type.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}
