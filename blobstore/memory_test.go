package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	data := []byte("archive bytes")
	require.NoError(t, store.Put(ctx, "a/1.png", data))
	require.NoError(t, store.Put(ctx, "b/1.png", []byte("x")))

	// Later mutation of the caller's slice is not visible.
	data[0] = 'X'

	blob, err := store.Open(ctx, "a/1.png")
	require.NoError(t, err)
	assert.Equal(t, int64(13), blob.Size())

	rc, err := Reader(ctx, blob)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "archive bytes", string(got))

	names, err := store.List(ctx, "a/")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1.png"}, names)

	_, err = store.Open(ctx, "c/1.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_EmptyBlob(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "empty", nil))

	blob, err := store.Open(ctx, "empty")
	require.NoError(t, err)

	rc, err := Reader(ctx, blob)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Empty(t, got)
}
