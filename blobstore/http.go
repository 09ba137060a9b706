package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// HTTPStore is a read-only BlobStore serving blobs from a base URL.
//
// Blob names are appended to the base URL. Open issues a HEAD request to
// learn the size; reads use Range requests.
type HTTPStore struct {
	base   *url.URL
	client *http.Client
}

// HTTPOption configures an HTTPStore.
type HTTPOption func(*HTTPStore)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPStore) {
		if c != nil {
			s.client = c
		}
	}
}

// NewHTTPStore creates a store reading blobs below baseURL.
func NewHTTPStore(baseURL string, optFns ...HTTPOption) (*HTTPStore, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("blobstore: unsupported scheme %q", u.Scheme)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	s := &HTTPStore{base: u, client: http.DefaultClient}
	for _, fn := range optFns {
		fn(s)
	}
	return s, nil
}

func (s *HTTPStore) url(name string) string {
	return s.base.JoinPath(name).String()
}

// Open issues a HEAD request and returns a handle for ranged reads.
func (s *HTTPStore) Open(ctx context.Context, name string) (Blob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.url(name), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	_ = resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &HTTPStatusError{Method: req.Method, URL: req.URL.String(), StatusCode: resp.StatusCode}
	case resp.ContentLength < 0:
		return nil, fmt.Errorf("blobstore: %s: unknown content length", req.URL)
	}

	return &httpBlob{
		client: s.client,
		url:    req.URL.String(),
		size:   resp.ContentLength,
	}, nil
}

// Put is not supported.
func (s *HTTPStore) Put(context.Context, string, []byte) error {
	return ErrReadOnly
}

// List is not supported; HTTP has no listing primitive.
func (s *HTTPStore) List(context.Context, string) ([]string, error) {
	return nil, ErrReadOnly
}

// HTTPStatusError reports an unexpected HTTP response status.
type HTTPStatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("blobstore: %s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

type httpBlob struct {
	client *http.Client
	url    string
	size   int64
}

func (b *httpBlob) Size() int64 {
	return b.size
}

func (b *httpBlob) Close() error {
	return nil
}

func (b *httpBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	rc, err := b.ReadRange(ctx, off, int64(len(p)))
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	n, err := io.ReadFull(rc, p)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return n, io.EOF
	}
	return n, err
}

func (b *httpBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	start, end, err := clip(off, length, b.size)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.url, nil)
	if err != nil {
		return nil, err
	}
	whole := start == 0 && end == b.size
	if !whole {
		req.Header.Set("Range", "bytes="+strconv.FormatInt(start, 10)+"-"+strconv.FormatInt(end-1, 10))
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusPartialContent:
		return resp.Body, nil
	case http.StatusOK:
		if whole {
			return resp.Body, nil
		}
		// Server ignored the range header.
		if _, err := io.CopyN(io.Discard, resp.Body, start); err != nil {
			_ = resp.Body.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{io.LimitReader(resp.Body, end-start), resp.Body}, nil
	default:
		_ = resp.Body.Close()
		return nil, &HTTPStatusError{Method: req.Method, URL: b.url, StatusCode: resp.StatusCode}
	}
}
