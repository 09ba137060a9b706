package minio

import (
	"context"
	"io"
	"testing"

	"github.com/hupe1980/pascifar/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", contentType("cat/1.png"))
	assert.Equal(t, "text/csv", contentType("ts.csv"))
	assert.Equal(t, "application/gzip", contentType("cifar-10-binary.tar.gz"))
	assert.Equal(t, "application/octet-stream", contentType("data_batch_1.bin"))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	client, err := minio.New("localhost:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	bucket := "test-pascifar"

	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("file,label\ncat/1.png,7\n")
	require.NoError(t, store.Put(ctx, "ts.csv", data))

	blob, err := store.Open(ctx, "ts.csv")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	rc, err := blobstore.Reader(ctx, blob)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, data, got)

	buf := make([]byte, 5)
	_, err = blob.ReadAt(ctx, buf, 11)
	require.NoError(t, err)
	assert.Equal(t, "cat/1", string(buf))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "ts.csv")

	_, err = store.Open(ctx, "missing.csv")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
