package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/hupe1980/pascifar/blobstore"
	"github.com/hupe1980/pascifar/label"
)

// Directory names produced by extracting the binary archives.
const (
	CIFAR10Dir  = "cifar-10-batches-bin"
	CIFAR100Dir = "cifar-100-binary"
)

// vocabFile locates a label vocabulary and the header byte indexing it.
type vocabFile struct {
	dataset label.Dataset
	file    string
	offset  int
}

type batchSource struct {
	once
	name    string
	store   blobstore.BlobStore
	header  int
	vocabs  []vocabFile // priority order
	batches []string
}

// CIFAR10 reads the five CIFAR-10 training batches from dir.
//
// Records are 1 label byte followed by 3072 pixel bytes.
func CIFAR10(dir string) Source {
	return NewCIFAR10(blobstore.NewLocalStore(dir))
}

// NewCIFAR10 reads the CIFAR-10 training batches from store.
func NewCIFAR10(store blobstore.BlobStore) Source {
	return &batchSource{
		name:   "cifar-10",
		store:  store,
		header: 1,
		vocabs: []vocabFile{
			{dataset: label.CIFAR10, file: "batches.meta.txt", offset: 0},
		},
		batches: []string{
			"data_batch_1.bin",
			"data_batch_2.bin",
			"data_batch_3.bin",
			"data_batch_4.bin",
			"data_batch_5.bin",
		},
	}
}

// CIFAR100 reads the CIFAR-100 training batch from dir.
//
// Records are a coarse label byte, a fine label byte and 3072 pixel bytes.
// The fine label is yielded first so it takes precedence over the coarse one.
func CIFAR100(dir string) Source {
	return NewCIFAR100(blobstore.NewLocalStore(dir))
}

// NewCIFAR100 reads the CIFAR-100 training batch from store.
func NewCIFAR100(store blobstore.BlobStore) Source {
	return &batchSource{
		name:   "cifar-100",
		store:  store,
		header: 2,
		vocabs: []vocabFile{
			{dataset: label.CIFAR100Fine, file: "fine_label_names.txt", offset: 1},
			{dataset: label.CIFAR100Coarse, file: "coarse_label_names.txt", offset: 0},
		},
		batches: []string{"train.bin"},
	}
}

func (s *batchSource) Name() string { return s.name }

func (s *batchSource) Records(ctx context.Context) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		if !s.take() {
			consumed(yield)
			return
		}

		vocabs, err := s.loadVocabularies(ctx)
		if err != nil {
			yield(Record{}, err)
			return
		}

		for _, batch := range s.batches {
			if !s.readBatch(ctx, batch, vocabs, yield) {
				return
			}
		}
	}
}

func (s *batchSource) loadVocabularies(ctx context.Context) ([]Vocabulary, error) {
	vocabs := make([]Vocabulary, len(s.vocabs))
	for i, vf := range s.vocabs {
		data, release, err := s.load(ctx, vf.file)
		if err != nil {
			return nil, err
		}
		v, err := ReadVocabulary(vf.dataset, bytes.NewReader(data))
		_ = release()
		if err != nil {
			return nil, fmt.Errorf("source: %s: %w", vf.file, err)
		}
		vocabs[i] = v
	}
	return vocabs, nil
}

// readBatch yields every record of one batch file. It returns false when
// iteration must stop.
func (s *batchSource) readBatch(ctx context.Context, batch string, vocabs []Vocabulary, yield func(Record, error) bool) bool {
	data, release, err := s.load(ctx, batch)
	if err != nil {
		yield(Record{}, err)
		return false
	}
	defer func() { _ = release() }()

	size := s.header + PixelBytes
	if len(data)%size != 0 {
		yield(Record{}, fmt.Errorf("%w: %s: %d bytes is not a multiple of the %d-byte record size", ErrMalformedRecord, batch, len(data), size))
		return false
	}

	for off := 0; off < len(data); off += size {
		if err := ctx.Err(); err != nil {
			yield(Record{}, err)
			return false
		}

		labels := make([]Label, len(s.vocabs))
		for i, vf := range s.vocabs {
			l, err := vocabs[i].Label(int(data[off+vf.offset]))
			if err != nil {
				yield(Record{}, fmt.Errorf("%s record %d: %w", batch, off/size, err))
				return false
			}
			labels[i] = l
		}

		rec := Record{
			Labels: labels,
			Pixels: bytes.Clone(data[off+s.header : off+size]),
		}
		if !yield(rec, nil) {
			return false
		}
	}
	return true
}

// load returns the content of a blob. Mapped blobs are returned without
// copying; the bytes are valid until release is called.
func (s *batchSource) load(ctx context.Context, name string) ([]byte, func() error, error) {
	blob, err := s.store.Open(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("source: open %s: %w", name, err)
	}

	if m, ok := blob.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			_ = blob.Close()
			return nil, nil, err
		}
		return data, blob.Close, nil
	}
	defer blob.Close()

	rc, err := blobstore.Reader(ctx, blob)
	if err != nil {
		return nil, nil, fmt.Errorf("source: read %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, nil, fmt.Errorf("source: read %s: %w", name, err)
	}
	return data, func() error { return nil }, nil
}
