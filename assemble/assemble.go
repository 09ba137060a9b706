package assemble

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hupe1980/pascifar/imaging"
	"github.com/hupe1980/pascifar/internal/fs"
	"github.com/hupe1980/pascifar/label"
	"github.com/hupe1980/pascifar/source"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Counts maps a target label to the number of images written for it.
type Counts map[string]int

// Total returns the number of images across all targets.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithFileSystem sets the file system images are written to.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(a *Assembler) {
		a.fs = fsys
	}
}

// WithEncoder sets the image encoder. Defaults to imaging.PNG.
func WithEncoder(enc imaging.Encoder) Option {
	return func(a *Assembler) {
		a.encoder = enc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = l
	}
}

// WithMetricsObserver sets the metrics observer.
func WithMetricsObserver(m MetricsObserver) Option {
	return func(a *Assembler) {
		a.metrics = m
	}
}

// Assembler writes the images of selected records below an output root.
// It holds no per-run state and may be reused.
type Assembler struct {
	resolver *label.Resolver
	fs       fs.FileSystem
	encoder  imaging.Encoder
	logger   *slog.Logger
	metrics  MetricsObserver
}

// New creates an Assembler resolving labels with r.
func New(r *label.Resolver, opts ...Option) *Assembler {
	a := &Assembler{
		resolver: r,
		fs:       fs.Default,
		encoder:  imaging.PNG,
		logger:   slog.New(slog.DiscardHandler),
		metrics:  NoopMetricsObserver{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// run is the state of one Assemble call.
type run struct {
	root     string
	counters Counts
	dirs     map[string]bool
}

// Assemble consumes every source in order and writes one image per
// selected record. root must already exist.
//
// The first error stops the call. Images written before the failure stay
// on disk.
func (a *Assembler) Assemble(ctx context.Context, root string, sources ...source.Source) (Counts, error) {
	r := &run{
		root:     root,
		counters: make(Counts),
		dirs:     make(map[string]bool),
	}

	for _, src := range sources {
		if err := a.consume(ctx, r, src); err != nil {
			return r.counters, err
		}
	}
	return r.counters, nil
}

func (a *Assembler) consume(ctx context.Context, r *run, src source.Source) error {
	start := time.Now()
	seen, kept := 0, 0

	for rec, err := range src.Records(ctx) {
		if err != nil {
			return fmt.Errorf("assemble: %s: %w", src.Name(), err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		idx := seen
		seen++

		lbl, ok := a.selected(rec)
		if !ok {
			a.metrics.OnSkip(src.Name())
			continue
		}
		if err := a.place(r, rec, lbl); err != nil {
			return &RecordError{Source: src.Name(), Index: idx, Target: err.target, Err: err.err}
		}
		kept++
	}

	a.logger.Info("source assembled",
		slog.String("source", src.Name()),
		slog.Int("records", seen),
		slog.Int("kept", kept),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// selected returns the first candidate label the resolver keeps.
func (a *Assembler) selected(rec source.Record) (source.Label, bool) {
	for _, l := range rec.Labels {
		if a.resolver.IsSelected(l.Dataset, l.Name) {
			return l, true
		}
	}
	return source.Label{}, false
}

type placeError struct {
	target string
	err    error
}

func (a *Assembler) place(r *run, rec source.Record, lbl source.Label) *placeError {
	start := time.Now()

	target, err := a.resolver.TargetNameFor(lbl.Dataset, lbl.Name)
	if err != nil {
		return &placeError{err: err}
	}

	img, err := imaging.Decode(rec.Pixels)
	if err != nil {
		return &placeError{target: target, err: fmt.Errorf("%w: %w", ErrDecode, err)}
	}
	data, err := a.encoder.Encode(img)
	if err != nil {
		return &placeError{target: target, err: fmt.Errorf("%w: %w", ErrDecode, err)}
	}

	dir := filepath.Join(r.root, target)
	if !r.dirs[target] {
		if err := a.fs.MkdirAll(dir, dirPerm); err != nil {
			return &placeError{target: target, err: fmt.Errorf("%w: create %s: %w", ErrFilesystem, dir, err)}
		}
		r.dirs[target] = true
	}

	seq := r.counters[target] + 1
	name := filepath.Join(dir, strconv.Itoa(seq)+a.encoder.Ext())
	if err := fs.WriteFile(a.fs, name, data, filePerm); err != nil {
		return &placeError{target: target, err: fmt.Errorf("%w: write %s: %w", ErrFilesystem, name, err)}
	}
	r.counters[target] = seq

	a.metrics.OnImage(target, len(data), time.Since(start))
	return nil
}
