package source

import (
	"context"
	"testing"

	"github.com/hupe1980/pascifar/blobstore"
	"github.com/hupe1980/pascifar/label"
	"github.com/hupe1980/pascifar/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, src Source) ([]Record, error) {
	t.Helper()
	var out []Record
	for rec, err := range src.Records(context.Background()) {
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func TestCIFAR10_Records(t *testing.T) {
	rng := testutil.NewRNG(7)
	catPixels := rng.Pixels()

	fx := testutil.CIFAR10Fixture{Classes: testutil.CIFAR10Classes}
	fx.Add(0, testutil.CIFAR10Entry{Class: "cat", Pixels: catPixels})
	fx.Add(0, testutil.CIFAR10Entry{Class: "truck"})
	fx.Add(3, testutil.CIFAR10Entry{Class: "ship"})
	files, err := fx.Files()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, testutil.Put(context.Background(), blobstore.NewLocalStore(dir), "", files))

	src := CIFAR10(dir)
	assert.Equal(t, "cifar-10", src.Name())

	records, err := collect(t, src)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []Label{{Dataset: label.CIFAR10, Name: "cat"}}, records[0].Labels)
	assert.Equal(t, catPixels, records[0].Pixels)
	assert.Equal(t, "truck", records[1].Labels[0].Name)
	assert.Equal(t, "ship", records[2].Labels[0].Name)
	assert.Len(t, records[2].Pixels, PixelBytes)
}

func TestCIFAR100_FineBeforeCoarse(t *testing.T) {
	fx := testutil.CIFAR100Fixture{
		Fine:   testutil.CIFAR100Fine,
		Coarse: testutil.CIFAR100Coarse,
		Train: []testutil.CIFAR100Entry{
			{Coarse: "people", Fine: "woman"},
			{Coarse: "household_furniture", Fine: "couch"},
		},
	}
	files, err := fx.Files()
	require.NoError(t, err)

	store := blobstore.NewMemoryStore()
	require.NoError(t, testutil.Put(context.Background(), store, "", files))

	records, err := collect(t, NewCIFAR100(store))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []Label{
		{Dataset: label.CIFAR100Fine, Name: "woman"},
		{Dataset: label.CIFAR100Coarse, Name: "people"},
	}, records[0].Labels)
	assert.Equal(t, "couch", records[1].Labels[0].Name)
}

func TestSource_NotRestartable(t *testing.T) {
	fx := testutil.CIFAR10Fixture{Classes: testutil.CIFAR10Classes}
	fx.Add(0, testutil.CIFAR10Entry{Class: "dog"})
	files, err := fx.Files()
	require.NoError(t, err)

	store := blobstore.NewMemoryStore()
	require.NoError(t, testutil.Put(context.Background(), store, "", files))

	src := NewCIFAR10(store)
	records, err := collect(t, src)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = collect(t, src)
	assert.ErrorIs(t, err, ErrConsumed)
}

func TestCIFAR10_Malformed(t *testing.T) {
	ctx := context.Background()

	t.Run("Truncated", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "batches.meta.txt", []byte("cat\ndog\n")))
		require.NoError(t, store.Put(ctx, "data_batch_1.bin", make([]byte, 100)))

		_, err := collect(t, NewCIFAR10(store))
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("LabelOutOfRange", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		batch := make([]byte, 1+PixelBytes)
		batch[0] = 5
		require.NoError(t, store.Put(ctx, "batches.meta.txt", []byte("cat\ndog\n")))
		require.NoError(t, store.Put(ctx, "data_batch_1.bin", batch))

		_, err := collect(t, NewCIFAR10(store))
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("MissingBatch", func(t *testing.T) {
		store := blobstore.NewMemoryStore()
		require.NoError(t, store.Put(ctx, "batches.meta.txt", []byte("cat\n")))

		_, err := collect(t, NewCIFAR10(store))
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("MissingMeta", func(t *testing.T) {
		_, err := collect(t, NewCIFAR10(blobstore.NewMemoryStore()))
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}

func TestRecords_StopsOnCancel(t *testing.T) {
	src := Slice("mem", []Record{{}, {}, {}})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := 0
	var gotErr error
	for _, err := range src.Records(ctx) {
		if err != nil {
			gotErr = err
			break
		}
		n++
		cancel()
	}
	assert.Equal(t, 1, n)
	assert.ErrorIs(t, gotErr, context.Canceled)
}
