package label

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Resolver answers selection, remap and id lookups over a fixed set of
// Tables. It is immutable after New and safe for concurrent use.
type Resolver struct {
	selected map[Dataset]map[string]struct{}
	remap    map[Dataset]map[string]string
	target   []string
	ids      map[string]int
}

// New validates tables and builds a Resolver from a private copy of them.
//
// Every selected name must have a remap entry, every remap value must be
// a target name, target names must be unique single path elements and no
// two names of the same dataset may share a target.
func New(tables Tables) (*Resolver, error) {
	r := &Resolver{
		selected: make(map[Dataset]map[string]struct{}, len(tables.Selection)),
		remap:    make(map[Dataset]map[string]string, len(tables.Remap)),
		target:   slices.Clone(tables.Target),
		ids:      make(map[string]int, len(tables.Target)),
	}

	if len(r.target) == 0 {
		return nil, fmt.Errorf("%w: empty target taxonomy", ErrInvalidTables)
	}
	for i, name := range r.target {
		if name == "" {
			return nil, fmt.Errorf("%w: empty target name at index %d", ErrInvalidTables, i)
		}
		if !isPathElement(name) {
			return nil, fmt.Errorf("%w: target name %q is not a directory name", ErrInvalidTables, name)
		}
		if _, dup := r.ids[name]; dup {
			return nil, fmt.Errorf("%w: duplicate target name %q", ErrInvalidTables, name)
		}
		r.ids[name] = i
	}

	for ds, m := range tables.Remap {
		owned := make(map[string]string, len(m))
		seen := make(map[string]string, len(m))
		for src, dst := range m {
			if _, ok := r.ids[dst]; !ok {
				return nil, fmt.Errorf("%s/%q: %w", ds, src, &UnknownTargetLabelError{Name: dst})
			}
			if prev, dup := seen[dst]; dup {
				return nil, fmt.Errorf("%w: %s maps both %q and %q to %q", ErrInvalidTables, ds, prev, src, dst)
			}
			seen[dst] = src
			owned[src] = dst
		}
		r.remap[ds] = owned
	}

	for ds, names := range tables.Selection {
		set := make(map[string]struct{}, len(names))
		for _, name := range names {
			if _, ok := r.remap[ds][name]; !ok {
				return nil, &UnmappedLabelError{Dataset: ds, Name: name}
			}
			set[name] = struct{}{}
		}
		r.selected[ds] = set
	}

	return r, nil
}

// MustNew is like New but panics on invalid tables.
func MustNew(tables Tables) *Resolver {
	r, err := New(tables)
	if err != nil {
		panic(err)
	}
	return r
}

// IsSelected reports whether name is in the selection set of ds.
func (r *Resolver) IsSelected(ds Dataset, name string) bool {
	_, ok := r.selected[ds][name]
	return ok
}

// TargetNameFor returns the target name a source label maps to.
func (r *Resolver) TargetNameFor(ds Dataset, name string) (string, error) {
	dst, ok := r.remap[ds][name]
	if !ok {
		return "", &UnmappedLabelError{Dataset: ds, Name: name}
	}
	return dst, nil
}

// NumericIDFor returns the index of target within the target taxonomy.
func (r *Resolver) NumericIDFor(target string) (int, error) {
	id, ok := r.ids[target]
	if !ok {
		return 0, &UnknownTargetLabelError{Name: target}
	}
	return id, nil
}

// Target returns a copy of the target taxonomy in canonical order.
func (r *Resolver) Target() []string {
	return slices.Clone(r.target)
}

// Len returns the size of the target taxonomy.
func (r *Resolver) Len() int {
	return len(r.target)
}

// Missing returns, in canonical order, the target names that no selected
// source label maps to.
func (r *Resolver) Missing() []string {
	covered := make(map[string]struct{}, len(r.target))
	for ds, set := range r.selected {
		for name := range set {
			covered[r.remap[ds][name]] = struct{}{}
		}
	}

	var missing []string
	for _, name := range r.target {
		if _, ok := covered[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// isPathElement reports whether name can be used as a directory directly
// below the output root.
func isPathElement(name string) bool {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return false
	}
	return filepath.Base(name) == name && !filepath.IsAbs(name) && filepath.VolumeName(name) == ""
}
