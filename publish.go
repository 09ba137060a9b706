package pascifar

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/hupe1980/pascifar/blobstore"
	"github.com/hupe1980/pascifar/manifest"
	"github.com/hupe1980/pascifar/resource"
	"golang.org/x/sync/errgroup"
)

// defaultUploads bounds concurrent uploads when no resource controller is set.
const defaultUploads = 8

// Publish uploads a finished dataset to store: every image listed in the
// manifest, then the manifest itself, so a readable manifest implies its
// images are present. Blob names are the manifest paths below WithPrefix.
// It returns the number of blobs written.
func Publish(ctx context.Context, root string, store blobstore.BlobStore, opts ...Option) (int, error) {
	o := applyOptions(opts)
	logger := o.logger.WithRoot(root).WithStage(StagePublish)

	entries, err := manifest.Read(o.fs, root)
	if err != nil {
		logger.LogPublish(ctx, 0, err)
		return 0, stageError(StagePublish, err)
	}

	rc := o.rc
	if rc == nil {
		rc = resource.NewController(resource.Config{MaxTransfers: defaultUploads})
	}

	p := &publisher{o: &o, root: root, store: store, rc: rc}

	g, gctx := errgroup.WithContext(ctx)
	for _, e := range entries {
		if err := rc.AcquireTransfer(gctx); err != nil {
			break
		}
		g.Go(func() error {
			defer rc.ReleaseTransfer()
			return p.upload(gctx, e.File)
		})
	}
	if err := g.Wait(); err != nil {
		logger.LogPublish(ctx, int(p.uploaded.Load()), err)
		return int(p.uploaded.Load()), stageError(StagePublish, err)
	}
	if err := ctx.Err(); err != nil {
		return int(p.uploaded.Load()), stageError(StagePublish, err)
	}

	if err := p.upload(ctx, manifest.FileName); err != nil {
		logger.LogPublish(ctx, int(p.uploaded.Load()), err)
		return int(p.uploaded.Load()), stageError(StagePublish, err)
	}

	n := int(p.uploaded.Load())
	logger.LogPublish(ctx, n, nil)
	return n, nil
}

type publisher struct {
	o        *options
	root     string
	store    blobstore.BlobStore
	rc       *resource.Controller
	uploaded atomic.Int64
}

func (p *publisher) upload(ctx context.Context, name string) (err error) {
	start := time.Now()
	size := 0
	defer func() {
		p.o.metricsCollector.RecordUpload(name, size, time.Since(start), err)
	}()

	local := filepath.Join(p.root, filepath.FromSlash(name))
	fi, err := p.o.fs.Stat(local)
	if err != nil {
		return err
	}
	if err := p.rc.AcquireMemory(ctx, fi.Size()); err != nil {
		return err
	}
	defer p.rc.ReleaseMemory(fi.Size())

	data, err := readFile(p.o, local)
	if err != nil {
		return err
	}
	size = len(data)

	key := path.Join(p.o.prefix, name)
	if err := p.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	p.uploaded.Add(1)
	return nil
}

func readFile(o *options, name string) ([]byte, error) {
	f, err := o.fs.OpenFile(name, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
