package source

import (
	"context"
	"errors"
	"iter"
	"sync/atomic"

	"github.com/hupe1980/pascifar/label"
)

const (
	// ImageSide is the width and height of a CIFAR image.
	ImageSide = 32
	// PixelBytes is the size of one channel-planar RGB record.
	PixelBytes = ImageSide * ImageSide * 3
)

var (
	// ErrConsumed is yielded when Records is called more than once.
	ErrConsumed = errors.New("source: records already consumed")

	// ErrMalformedRecord is returned for truncated batches or label indices
	// outside the vocabulary.
	ErrMalformedRecord = errors.New("source: malformed record")
)

// Label is a label name within one dataset vocabulary.
type Label struct {
	Dataset label.Dataset
	Name    string
}

// Record is one labeled image.
//
// Labels are ordered by priority: the first selected label decides where
// the record goes.
type Record struct {
	Labels []Label
	Pixels []byte
}

// Source produces records lazily.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Records yields every record once. Iteration stops at the first error.
	Records(ctx context.Context) iter.Seq2[Record, error]
}

// once guards a source against being iterated twice.
type once struct {
	used atomic.Bool
}

func (o *once) take() bool {
	return o.used.CompareAndSwap(false, true)
}

func consumed(yield func(Record, error) bool) {
	yield(Record{}, ErrConsumed)
}

// Slice returns a Source over in-memory records.
func Slice(name string, records []Record) Source {
	return &sliceSource{name: name, records: records}
}

type sliceSource struct {
	once
	name    string
	records []Record
}

func (s *sliceSource) Name() string { return s.name }

func (s *sliceSource) Records(ctx context.Context) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		if !s.take() {
			consumed(yield)
			return
		}
		for _, rec := range s.records {
			if err := ctx.Err(); err != nil {
				yield(Record{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}
