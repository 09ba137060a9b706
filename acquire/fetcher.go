package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hupe1980/pascifar/blobstore"
	"github.com/hupe1980/pascifar/internal/fs"
	"github.com/hupe1980/pascifar/resource"
	"golang.org/x/time/rate"
)

// ErrAcquisition wraps every failure to fetch or unpack an archive.
var ErrAcquisition = errors.New("acquire: acquisition failed")

// Progress reports a running download.
type Progress struct {
	Archive string
	Done    int64
	Total   int64
}

// MetricsObserver receives acquisition events.
type MetricsObserver interface {
	// OnDownload is called after an archive download finishes or fails.
	OnDownload(archive string, bytes int64, duration time.Duration, err error)

	// OnExtract is called after an archive has been unpacked or failed to.
	OnExtract(archive string, files int, duration time.Duration, err error)
}

// NoopMetricsObserver is a no-op implementation of MetricsObserver.
type NoopMetricsObserver struct{}

func (NoopMetricsObserver) OnDownload(string, int64, time.Duration, error) {}
func (NoopMetricsObserver) OnExtract(string, int, time.Duration, error)    {}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFileSystem sets the file system archives are stored and unpacked on.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(f *Fetcher) {
		f.fs = fsys
	}
}

// WithProgress registers a callback for download progress. Calls are
// throttled to the given interval; the final update is always delivered.
func WithProgress(fn func(Progress), interval time.Duration) Option {
	return func(f *Fetcher) {
		f.progress = fn
		f.progressEvery = interval
	}
}

// WithResourceController throttles downloads to the controller's IO limit.
func WithResourceController(rc *resource.Controller) Option {
	return func(f *Fetcher) {
		f.rc = rc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// WithMetricsObserver sets the metrics observer.
func WithMetricsObserver(m MetricsObserver) Option {
	return func(f *Fetcher) {
		f.metrics = m
	}
}

// Fetcher downloads and unpacks archives from an origin store.
type Fetcher struct {
	origin        blobstore.BlobStore
	fs            fs.FileSystem
	progress      func(Progress)
	progressEvery time.Duration
	rc            *resource.Controller
	logger        *slog.Logger
	metrics       MetricsObserver
}

// New creates a Fetcher reading archives from origin.
func New(origin blobstore.BlobStore, opts ...Option) *Fetcher {
	f := &Fetcher{
		origin:        origin,
		fs:            fs.Default,
		progressEvery: time.Second,
		logger:        slog.New(slog.DiscardHandler),
		metrics:       NoopMetricsObserver{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewHTTP creates a Fetcher for an HTTP origin such as DefaultOrigin.
func NewHTTP(baseURL string, opts ...Option) (*Fetcher, error) {
	origin, err := blobstore.NewHTTPStore(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	return New(origin, opts...), nil
}

// Ensure makes every archive available unpacked below dir. Pass Defaults
// for the CIFAR distributions; with no archives Ensure does nothing.
// dir must exist.
func (f *Fetcher) Ensure(ctx context.Context, dir string, archives ...Archive) error {
	for _, a := range archives {
		if err := f.ensure(ctx, dir, a); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrAcquisition, a.Name, err)
		}
	}
	return nil
}

func (f *Fetcher) ensure(ctx context.Context, dir string, a Archive) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	extracted := filepath.Join(dir, a.Extracted)
	ok, err := fs.Exists(f.fs, extracted)
	if err != nil {
		return err
	}
	if ok {
		f.logger.Debug("archive already extracted", slog.String("archive", a.Name), slog.String("dir", extracted))
		return nil
	}

	local := filepath.Join(dir, a.Name)
	ok, err = fs.Exists(f.fs, local)
	if err != nil {
		return err
	}
	if !ok {
		if err := f.download(ctx, a.Name, local); err != nil {
			return err
		}
	}

	return f.unpack(ctx, dir, a, local)
}

// download copies the origin blob to dst through a temporary file.
func (f *Fetcher) download(ctx context.Context, name, dst string) (err error) {
	start := time.Now()
	var written int64
	defer func() {
		f.metrics.OnDownload(name, written, time.Since(start), err)
	}()

	blob, err := f.origin.Open(ctx, name)
	if err != nil {
		return err
	}
	defer blob.Close()

	rc, err := blobstore.Reader(ctx, blob)
	if err != nil {
		return err
	}
	defer rc.Close()

	var r io.Reader = rc
	if f.rc != nil {
		r = resource.NewRateLimitedReader(ctx, r, f.rc)
	}
	pr := &progressReader{
		r:        r,
		progress: Progress{Archive: name, Total: blob.Size()},
		report:   f.progress,
		every:    rate.Sometimes{Interval: f.progressEvery},
	}

	f.logger.Info("downloading archive", slog.String("archive", name), slog.Int64("bytes", blob.Size()))

	tmp := dst + ".part"
	out, err := f.fs.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	written, err = io.Copy(out, pr)
	if err == nil && written != blob.Size() {
		err = fmt.Errorf("short download: got %d of %d bytes", written, blob.Size())
	}
	if err == nil {
		err = out.Sync()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = f.fs.Remove(tmp)
		return err
	}
	pr.finish()

	if err := f.fs.Rename(tmp, dst); err != nil {
		_ = f.fs.Remove(tmp)
		return err
	}
	return nil
}

// unpack extracts into a staging directory and moves the expected
// directory into place, so an interrupted extraction never looks complete.
func (f *Fetcher) unpack(ctx context.Context, dir string, a Archive, local string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	files := 0
	defer func() {
		f.metrics.OnExtract(a.Name, files, time.Since(start), err)
	}()

	staging := filepath.Join(dir, "."+a.Name+".extract")
	if err := f.fs.RemoveAll(staging); err != nil {
		return err
	}
	defer func() { _ = f.fs.RemoveAll(staging) }()

	files, err = extract(f.fs, local, staging)
	if err != nil {
		return err
	}

	src := filepath.Join(staging, a.Extracted)
	ok, err := fs.Exists(f.fs, src)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("archive does not contain %s", a.Extracted)
	}
	if err := f.fs.Rename(src, filepath.Join(dir, a.Extracted)); err != nil {
		return err
	}

	f.logger.Info("archive extracted",
		slog.String("archive", a.Name),
		slog.Int("files", files),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

type progressReader struct {
	r        io.Reader
	progress Progress
	report   func(Progress)
	every    rate.Sometimes
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.progress.Done += int64(n)
	if p.report != nil && n > 0 {
		p.every.Do(func() { p.report(p.progress) })
	}
	return n, err
}

func (p *progressReader) finish() {
	if p.report != nil {
		p.report(p.progress)
	}
}
