package blobstore

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArchiveServer(t *testing.T, payload []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/~kriz/cifar-10-binary.tar.gz" {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, "cifar-10-binary.tar.gz", time.Time{}, bytes.NewReader(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPStore_Open(t *testing.T) {
	payload := []byte("0123456789abcdef")
	srv := newArchiveServer(t, payload)
	ctx := context.Background()

	store, err := NewHTTPStore(srv.URL+"/~kriz", WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	blob, err := store.Open(ctx, "cifar-10-binary.tar.gz")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(len(payload)), blob.Size())

	rc, err := Reader(ctx, blob)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, payload, got)

	rc, err = blob.ReadRange(ctx, 10, 100)
	require.NoError(t, err)
	got, err = io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "abcdef", string(got))

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "2345", string(buf))

	_, err = blob.ReadRange(ctx, 16, 1)
	assert.ErrorIs(t, err, io.EOF)
}

func TestHTTPStore_NotFound(t *testing.T) {
	srv := newArchiveServer(t, nil)

	store, err := NewHTTPStore(srv.URL+"/~kriz/", WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "cifar-100-binary.tar.gz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPStore_ReadOnly(t *testing.T) {
	store, err := NewHTTPStore("https://www.cs.toronto.edu/~kriz/")
	require.NoError(t, err)

	assert.ErrorIs(t, store.Put(context.Background(), "x", nil), ErrReadOnly)
	_, err = store.List(context.Background(), "")
	assert.ErrorIs(t, err, ErrReadOnly)

	_, err = NewHTTPStore("ftp://example.com/")
	assert.Error(t, err)
}

func TestHTTPStore_StatusError(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() || r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		http.ServeContent(w, r, "blob", time.Time{}, bytes.NewReader([]byte("payload")))
	}))
	t.Cleanup(srv.Close)
	ctx := context.Background()

	store, err := NewHTTPStore(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = store.Open(ctx, "broken")
	var se *HTTPStatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.MethodHead, se.Method)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Contains(t, se.Error(), "HEAD ")

	blob, err := store.Open(ctx, "blob")
	require.NoError(t, err)
	defer blob.Close()

	fail.Store(true)
	_, err = blob.ReadRange(ctx, 0, 3)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.MethodGet, se.Method)
	assert.Contains(t, se.Error(), "GET ")
}
