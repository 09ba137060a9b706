package manifest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/pascifar/internal/fs"
	"github.com/hupe1980/pascifar/label"
)

const (
	// FileName is the manifest file placed in the output root.
	FileName = "ts.csv"

	// ImageExt is the default extension of the image files that are indexed.
	ImageExt = ".png"
)

type options struct {
	ext string
}

// Option configures Scan and Write.
type Option func(*options)

// WithImageExt indexes files with extension ext (including the dot)
// instead of ImageExt. It must match the extension the images were
// written with.
func WithImageExt(ext string) Option {
	return func(o *options) {
		if ext != "" {
			o.ext = ext
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{ext: ImageExt}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Header is the first row of the manifest.
var Header = []string{"file", "label"}

var (
	// ErrRootMissing is returned when the output root does not exist.
	ErrRootMissing = errors.New("manifest: output root does not exist")

	// ErrMalformed is returned by Read for rows that cannot be parsed.
	ErrMalformed = errors.New("manifest: malformed row")
)

// Entry is one manifest row.
type Entry struct {
	File  string // slash-separated, relative to the output root
	Label int
}

// Scan walks root and returns the entries for every image found below a
// target directory. Non-image files and files whose stem is not a
// positive integer are ignored.
func Scan(fsys fs.FileSystem, root string, r *label.Resolver, opts ...Option) ([]Entry, error) {
	o := applyOptions(opts)

	exists, err := fs.Exists(fsys, root)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrRootMissing, root)
	}

	var entries []Entry
	for _, target := range r.Target() {
		dir := filepath.Join(root, target)
		files, err := fsys.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}

		seqs := make([]int, 0, len(files))
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			if n, ok := sequence(f.Name(), o.ext); ok {
				seqs = append(seqs, n)
			}
		}
		if len(seqs) == 0 {
			continue
		}
		slices.Sort(seqs)

		id, err := r.NumericIDFor(target)
		if err != nil {
			return nil, err
		}
		for _, n := range seqs {
			entries = append(entries, Entry{
				File:  path.Join(target, strconv.Itoa(n)+o.ext),
				Label: id,
			})
		}
	}
	return entries, nil
}

// sequence parses "<n><ext>" into n.
func sequence(name, ext string) (int, bool) {
	stem, ok := strings.CutSuffix(name, ext)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(stem)
	if err != nil || n < 1 || strconv.Itoa(n) != stem {
		return 0, false
	}
	return n, true
}

// Write scans root and writes its manifest to <root>/ts.csv, replacing
// any previous manifest atomically. It returns the number of rows.
func Write(fsys fs.FileSystem, root string, r *label.Resolver, opts ...Option) (int, error) {
	entries, err := Scan(fsys, root, r, opts...)
	if err != nil {
		return 0, err
	}

	data, err := Encode(entries)
	if err != nil {
		return 0, err
	}
	if err := writeAtomic(fsys, filepath.Join(root, FileName), data); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Encode renders entries as CSV with a header row.
func Encode(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := w.Write([]string{e.File, strconv.Itoa(e.Label)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a manifest.
func Decode(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(rows) == 0 || !slices.Equal(rows[0], Header) {
		return nil, fmt.Errorf("%w: missing header", ErrMalformed)
	}

	entries := make([]Entry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		id, err := strconv.Atoi(row[1])
		if err != nil || id < 0 {
			return nil, fmt.Errorf("%w: line %d: label %q", ErrMalformed, i+2, row[1])
		}
		entries = append(entries, Entry{File: row[0], Label: id})
	}
	return entries, nil
}

// Read loads <root>/ts.csv.
func Read(fsys fs.FileSystem, root string) ([]Entry, error) {
	f, err := fsys.OpenFile(filepath.Join(root, FileName), os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

func writeAtomic(fsys fs.FileSystem, name string, data []byte) error {
	tmp := name + ".tmp"
	f, err := fsys.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = fsys.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = fsys.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	if err := fsys.Rename(tmp, name); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	return syncDir(fsys, filepath.Dir(name))
}

// syncDir persists the rename.
func syncDir(fsys fs.FileSystem, dir string) error {
	f, err := fsys.OpenFile(dir, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
