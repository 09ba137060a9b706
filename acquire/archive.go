package acquire

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hupe1980/pascifar/internal/fs"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// DefaultOrigin is the home of the CIFAR distributions.
const DefaultOrigin = "https://www.cs.toronto.edu/~kriz/"

// Archive names a source archive and the directory it unpacks to.
type Archive struct {
	Name      string
	Extracted string
}

// Defaults are the binary CIFAR-10 and CIFAR-100 distributions.
var Defaults = []Archive{
	{Name: "cifar-10-binary.tar.gz", Extracted: "cifar-10-batches-bin"},
	{Name: "cifar-100-binary.tar.gz", Extracted: "cifar-100-binary"},
}

// decompressor wraps a compressed stream.
type decompressor func(io.Reader) (io.ReadCloser, error)

func decompressorFor(name string) (decompressor, error) {
	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		}, nil
	case strings.HasSuffix(name, ".tar.zst"):
		return func(r io.Reader) (io.ReadCloser, error) {
			d, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return d.IOReadCloser(), nil
		}, nil
	case strings.HasSuffix(name, ".tar.lz4"):
		return func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(lz4.NewReader(r)), nil
		}, nil
	case strings.HasSuffix(name, ".tar"):
		return func(r io.Reader) (io.ReadCloser, error) {
			return io.NopCloser(r), nil
		}, nil
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", name)
	}
}

// extract unpacks the archive at src into dst and returns the number of
// regular files written. Directories, regular files and nothing else are
// materialized.
func extract(fsys fs.FileSystem, src, dst string) (int, error) {
	open, err := decompressorFor(src)
	if err != nil {
		return 0, err
	}

	f, err := fsys.OpenFile(src, os.O_RDONLY, 0)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	rc, err := open(f)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	files := 0
	tr := tar.NewReader(rc)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return files, nil
		}
		if err != nil {
			return files, err
		}

		target, err := entryPath(dst, hdr.Name)
		if err != nil {
			return files, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := fsys.MkdirAll(target, 0o755); err != nil {
				return files, err
			}
		case tar.TypeReg:
			if err := fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return files, err
			}
			if err := writeEntry(fsys, target, tr); err != nil {
				return files, err
			}
			files++
		}
	}
}

// entryPath resolves a tar entry name below dst, rejecting names that
// would escape it.
func entryPath(dst, name string) (string, error) {
	clean := path.Clean(strings.TrimPrefix(name, "./"))
	if clean == "." {
		return dst, nil
	}
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("illegal archive entry %q", name)
	}
	return filepath.Join(dst, filepath.FromSlash(clean)), nil
}

func writeEntry(fsys fs.FileSystem, name string, r io.Reader) error {
	out, err := fsys.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
