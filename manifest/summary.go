package manifest

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/pascifar/internal/conv"
)

// Summary describes which label ids a manifest uses.
type Summary struct {
	Rows      int
	PerLabel  map[int]int
	Used      *roaring.Bitmap
	NumLabels int

	// Invalid counts entries whose id cannot be a label id at all.
	Invalid int
}

// Summarize counts entries per label for a taxonomy of n labels.
func Summarize(entries []Entry, n int) Summary {
	s := Summary{
		Rows:      len(entries),
		PerLabel:  make(map[int]int),
		Used:      roaring.New(),
		NumLabels: n,
	}
	for _, e := range entries {
		s.PerLabel[e.Label]++
		id, err := conv.IntToUint32(e.Label)
		if err != nil {
			s.Invalid++
			continue
		}
		s.Used.Add(id)
	}
	return s
}

// Holes returns the ids in [0, NumLabels) that no entry uses, ascending.
func (s Summary) Holes() []int {
	all := roaring.New()
	all.AddRange(0, uint64(max(s.NumLabels, 0)))
	all.AndNot(s.Used)

	holes := make([]int, 0, all.GetCardinality())
	it := all.Iterator()
	for it.HasNext() {
		holes = append(holes, int(it.Next()))
	}
	return holes
}

// Distinct returns the number of ids in use.
func (s Summary) Distinct() int {
	n, err := conv.Uint64ToInt(s.Used.GetCardinality())
	if err != nil {
		return 0
	}
	return n
}

// OutOfRange reports whether an entry uses an id outside [0, NumLabels).
func (s Summary) OutOfRange() bool {
	if s.Invalid > 0 {
		return true
	}
	if s.Used.IsEmpty() {
		return false
	}
	return int(s.Used.Maximum()) >= s.NumLabels
}
