package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/stock2profit/internal/filestore"
)

var _ filestore.FileStore = (*Store)(nil)

func TestSaveAndGet(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	content := []byte("%PDF-1.3 fake receipt")

	key, err := store.Save(ctx, "receipt_1", "application/pdf", bytes.NewReader(content))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "receipt_1_"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	reader, mimeType, err := store.Get(ctx, key)
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, "application/pdf", mimeType)

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestSaveUsesDistinctKeys(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	a, err := store.Save(ctx, "receipt_1", "application/pdf", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := store.Save(ctx, "receipt_1", "application/pdf", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestUnknownMimeType(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	key, err := store.Save(ctx, "blob", "application/x-unknown", strings.NewReader("data"))
	require.NoError(t, err)

	reader, mimeType, err := store.Get(ctx, key)
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, "application/octet-stream", mimeType)
}

func TestDelete(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	key, err := store.Save(ctx, "receipt_1", "application/pdf", strings.NewReader("data"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, key))

	_, _, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, filestore.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, key), filestore.ErrNotFound)
}

func TestGetNotFound(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Get(context.Background(), "nonexistent.pdf")
	assert.ErrorIs(t, err, filestore.ErrNotFound)
}

func TestPathTraversal(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	_, _, err = store.Get(ctx, "../../etc/passwd")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, filestore.ErrNotFound)

	assert.Error(t, store.Delete(ctx, "../outside.pdf"))

	_, err = store.Save(ctx, "../escape", "application/pdf", strings.NewReader("x"))
	assert.Error(t, err)
}
