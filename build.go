package pascifar

import (
	"context"
	"path/filepath"
	"time"

	"github.com/hupe1980/pascifar/acquire"
	"github.com/hupe1980/pascifar/assemble"
	"github.com/hupe1980/pascifar/blobstore"
	"github.com/hupe1980/pascifar/internal/fs"
	"github.com/hupe1980/pascifar/label"
	"github.com/hupe1980/pascifar/manifest"
	"github.com/hupe1980/pascifar/source"
)

// Result describes a finished Build.
type Result struct {
	// Root is the output directory.
	Root string
	// Skipped is true when Root already existed and nothing was done.
	Skipped bool
	// Counts holds the images written per VOC class.
	Counts assemble.Counts
	// Rows is the number of manifest rows.
	Rows int
	// Empty lists the VOC classes without images, in canonical order.
	Empty []string
}

// Build produces the dataset in the work directory.
//
// If the output root exists, Build returns immediately with Skipped set.
// Otherwise the label tables are validated, the archives acquired, the
// output root created, the images assembled and the manifest written, in
// that order. Failures are returned as *StageError.
func Build(ctx context.Context, opts ...Option) (*Result, error) {
	o := applyOptions(opts)
	root := o.root()
	logger := o.logger.WithRoot(root)

	exists, err := fs.Exists(o.fs, root)
	if err != nil {
		return nil, stageError(StageValidate, err)
	}
	if exists {
		logger.LogSkip(ctx, root)
		return &Result{Root: root, Skipped: true}, nil
	}

	resolver, err := label.New(o.tables)
	if err != nil {
		return nil, stageError(StageValidate, err)
	}

	if err := acquireArchives(ctx, &o, logger.WithStage(StageAcquire)); err != nil {
		return nil, err
	}

	counts, err := assembleDataset(ctx, &o, resolver, root, logger.WithStage(StageAssemble))
	if err != nil {
		return nil, err
	}

	rows, empty, err := writeManifest(ctx, &o, resolver, root, logger.WithStage(StageManifest))
	if err != nil {
		return nil, err
	}

	return &Result{Root: root, Counts: counts, Rows: rows, Empty: empty}, nil
}

func acquireArchives(ctx context.Context, o *options, logger *Logger) error {
	if len(o.datasets) == 0 {
		return nil
	}

	origin := o.origin
	if origin == nil {
		store, err := blobstore.NewHTTPStore(o.originURL)
		if err != nil {
			return stageError(StageAcquire, err)
		}
		origin = store
	}

	fetchOpts := []acquire.Option{
		acquire.WithFileSystem(o.fs),
		acquire.WithResourceController(o.rc),
		acquire.WithLogger(logger.Logger),
		acquire.WithMetricsObserver(observer{o.metricsCollector}),
	}
	if o.progress != nil {
		fetchOpts = append(fetchOpts, acquire.WithProgress(o.progress, o.progressEvery))
	}

	archives := make([]acquire.Archive, len(o.datasets))
	for i, d := range o.datasets {
		archives[i] = d.Archive
	}

	err := acquire.New(origin, fetchOpts...).Ensure(ctx, o.workDir, archives...)
	logger.LogAcquire(ctx, archives, err)
	return stageError(StageAcquire, err)
}

func assembleDataset(ctx context.Context, o *options, r *label.Resolver, root string, logger *Logger) (assemble.Counts, error) {
	// The root only appears once acquisition has succeeded.
	if err := o.fs.Mkdir(root, 0o755); err != nil {
		return nil, stageError(StageAssemble, err)
	}

	sources := make([]source.Source, len(o.datasets))
	for i, d := range o.datasets {
		sources[i] = d.Open(filepath.Join(o.workDir, d.Archive.Extracted))
	}

	a := assemble.New(r,
		assemble.WithFileSystem(o.fs),
		assemble.WithEncoder(o.encoder),
		assemble.WithLogger(logger.Logger),
		assemble.WithMetricsObserver(observer{o.metricsCollector}),
	)
	counts, err := a.Assemble(ctx, root, sources...)
	logger.LogAssemble(ctx, counts, err)
	if err != nil {
		return nil, stageError(StageAssemble, err)
	}
	return counts, nil
}

func writeManifest(ctx context.Context, o *options, r *label.Resolver, root string, logger *Logger) (int, []string, error) {
	start := time.Now()
	rows, err := manifest.Write(o.fs, root, r, manifest.WithImageExt(o.encoder.Ext()))
	o.metricsCollector.RecordManifest(rows, time.Since(start), err)
	if err != nil {
		logger.LogManifest(ctx, 0, nil, err)
		return 0, nil, stageError(StageManifest, err)
	}

	entries, err := manifest.Read(o.fs, root)
	if err != nil {
		logger.LogManifest(ctx, 0, nil, err)
		return 0, nil, stageError(StageManifest, err)
	}

	target := r.Target()
	var empty []string
	for _, id := range manifest.Summarize(entries, r.Len()).Holes() {
		empty = append(empty, target[id])
	}
	logger.LogManifest(ctx, rows, empty, nil)
	return rows, empty, nil
}
