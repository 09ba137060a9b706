package source

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/pascifar/label"
)

// Vocabulary is the ordered label name table of one dataset.
type Vocabulary struct {
	Dataset label.Dataset
	names   []string
}

// NewVocabulary creates a vocabulary from names in index order.
func NewVocabulary(ds label.Dataset, names []string) Vocabulary {
	return Vocabulary{Dataset: ds, names: append([]string(nil), names...)}
}

// ReadVocabulary reads one label name per line. Blank lines are skipped.
func ReadVocabulary(ds label.Dataset, r io.Reader) (Vocabulary, error) {
	s := bufio.NewScanner(r)
	var names []string
	for s.Scan() {
		name := strings.TrimSpace(s.Text())
		if name != "" {
			names = append(names, name)
		}
	}
	if err := s.Err(); err != nil {
		return Vocabulary{}, err
	}
	if len(names) == 0 {
		return Vocabulary{}, fmt.Errorf("source: empty %s vocabulary", ds)
	}
	return Vocabulary{Dataset: ds, names: names}, nil
}

// Len returns the number of names.
func (v Vocabulary) Len() int {
	return len(v.names)
}

// Label resolves a numeric index to a label.
func (v Vocabulary) Label(index int) (Label, error) {
	if index < 0 || index >= len(v.names) {
		return Label{}, fmt.Errorf("%w: %s label index %d out of range [0,%d)", ErrMalformedRecord, v.Dataset, index, len(v.names))
	}
	return Label{Dataset: v.Dataset, Name: v.names[index]}, nil
}
