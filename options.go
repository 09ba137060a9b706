package pascifar

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/hupe1980/pascifar/acquire"
	"github.com/hupe1980/pascifar/blobstore"
	"github.com/hupe1980/pascifar/imaging"
	"github.com/hupe1980/pascifar/internal/fs"
	"github.com/hupe1980/pascifar/label"
	"github.com/hupe1980/pascifar/resource"
	"github.com/hupe1980/pascifar/source"
)

// DefaultRootName is the name of the output directory.
const DefaultRootName = "PASCIFAR"

// Dataset couples a source archive with the reader for its extracted
// directory.
type Dataset struct {
	Archive acquire.Archive
	// Open returns the source for the extracted directory.
	Open func(dir string) source.Source
}

// CIFAR10 is the binary CIFAR-10 distribution.
func CIFAR10() Dataset {
	return Dataset{Archive: acquire.Defaults[0], Open: source.CIFAR10}
}

// CIFAR100 is the binary CIFAR-100 distribution.
func CIFAR100() Dataset {
	return Dataset{Archive: acquire.Defaults[1], Open: source.CIFAR100}
}

type options struct {
	workDir          string
	rootName         string
	origin           blobstore.BlobStore
	originURL        string
	datasets         []Dataset
	tables           label.Tables
	encoder          imaging.Encoder
	fs               fs.FileSystem
	logger           *Logger
	metricsCollector MetricsCollector
	rc               *resource.Controller
	progress         func(acquire.Progress)
	progressEvery    time.Duration
	prefix           string
}

// Option configures Build and Publish.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{
		workDir:          ".",
		rootName:         DefaultRootName,
		originURL:        acquire.DefaultOrigin,
		datasets:         []Dataset{CIFAR10(), CIFAR100()},
		tables:           label.PASCIFAR(),
		encoder:          imaging.PNG,
		fs:               fs.Default,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		progressEvery:    time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	return o
}

func (o *options) root() string {
	return filepath.Join(o.workDir, o.rootName)
}

// WithWorkDir sets the directory holding the archives and the output root.
// Defaults to the current directory.
func WithWorkDir(dir string) Option {
	return func(o *options) {
		o.workDir = dir
	}
}

// WithRootName sets the name of the output directory inside the work
// directory. Defaults to DefaultRootName.
func WithRootName(name string) Option {
	return func(o *options) {
		o.rootName = name
	}
}

// WithOrigin sets the blob store archives are downloaded from, e.g. a
// mirror bucket. It takes precedence over WithOriginURL.
func WithOrigin(store blobstore.BlobStore) Option {
	return func(o *options) {
		o.origin = store
	}
}

// WithOriginURL sets the HTTP base URL archives are downloaded from.
// Defaults to acquire.DefaultOrigin.
func WithOriginURL(url string) Option {
	return func(o *options) {
		o.originURL = url
	}
}

// WithDatasets replaces the source datasets. Defaults to CIFAR-10 followed
// by CIFAR-100; the order decides the image numbering.
func WithDatasets(datasets ...Dataset) Option {
	return func(o *options) {
		o.datasets = datasets
	}
}

// WithTables replaces the label tables. Defaults to label.PASCIFAR().
func WithTables(t label.Tables) Option {
	return func(o *options) {
		o.tables = t
	}
}

// WithEncoder sets the image encoder. Defaults to imaging.PNG.
func WithEncoder(enc imaging.Encoder) Option {
	return func(o *options) {
		if enc == nil {
			enc = imaging.PNG
		}
		o.encoder = enc
	}
}

// WithFileSystem sets the file system used for archives and output.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := pascifar.NewJSONLogger(slog.LevelInfo)
//	res, _ := pascifar.Build(ctx, pascifar.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &pascifar.BasicMetricsCollector{}
//	_, _ = pascifar.Build(ctx, pascifar.WithMetricsCollector(metrics))
//	fmt.Println(metrics.GetStats().ImagesWritten)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithResourceController limits download bandwidth, and upload concurrency
// and memory in Publish.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithProgress registers a callback for download progress, called at most
// once per interval plus once when a download completes.
func WithProgress(fn func(acquire.Progress), interval time.Duration) Option {
	return func(o *options) {
		o.progress = fn
		o.progressEvery = interval
	}
}

// WithPrefix sets the blob name prefix Publish uploads below.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}
