package label

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catDogTables() Tables {
	return Tables{
		Selection: map[Dataset][]string{"pets": {"cat", "dog"}},
		Remap:     map[Dataset]map[string]string{"pets": {"cat": "cat", "dog": "dog"}},
		Target:    []string{"bird", "cat", "dog"},
	}
}

func TestResolver_PASCIFAR(t *testing.T) {
	r, err := New(PASCIFAR())
	require.NoError(t, err)

	t.Run("SelectedNamesMapIntoTaxonomy", func(t *testing.T) {
		tables := PASCIFAR()
		for ds, names := range tables.Selection {
			for _, name := range names {
				assert.True(t, r.IsSelected(ds, name), "%s/%s", ds, name)

				target, err := r.TargetNameFor(ds, name)
				require.NoError(t, err)
				assert.Contains(t, VOC2012, target)
			}
		}
	})

	t.Run("IDsMatchCanonicalIndex", func(t *testing.T) {
		for i, name := range VOC2012 {
			id, err := r.NumericIDFor(name)
			require.NoError(t, err)
			assert.Equal(t, i, id)
		}
		assert.Equal(t, 20, r.Len())
	})

	t.Run("Missing", func(t *testing.T) {
		assert.Equal(t, []string{"cow", "pottedplant", "sheep"}, r.Missing())
	})

	t.Run("CrossDatasetRemap", func(t *testing.T) {
		person, err := r.TargetNameFor(CIFAR100Coarse, "people")
		require.NoError(t, err)
		assert.Equal(t, "person", person)

		boat, err := r.TargetNameFor(CIFAR10, "ship")
		require.NoError(t, err)
		assert.Equal(t, "boat", boat)

		assert.False(t, r.IsSelected(CIFAR10, "people"))
		assert.False(t, r.IsSelected(CIFAR100Fine, "people"))
		assert.False(t, r.IsSelected(CIFAR10, "truck"))
	})
}

func TestResolver_Lookups(t *testing.T) {
	r := MustNew(catDogTables())

	assert.True(t, r.IsSelected("pets", "cat"))
	assert.False(t, r.IsSelected("pets", "bird"))
	assert.False(t, r.IsSelected("other", "cat"))

	_, err := r.TargetNameFor("pets", "bird")
	require.ErrorIs(t, err, ErrUnmappedLabel)

	var ue *UnmappedLabelError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, Dataset("pets"), ue.Dataset)
	assert.Equal(t, "bird", ue.Name)

	_, err = r.NumericIDFor("horse")
	require.ErrorIs(t, err, ErrUnknownTargetLabel)

	id, err := r.NumericIDFor("bird")
	require.NoError(t, err)
	assert.Equal(t, 0, id)
	assert.Equal(t, []string{"bird"}, r.Missing())
}

func TestResolver_Deterministic(t *testing.T) {
	r := MustNew(PASCIFAR())

	for range 3 {
		for _, name := range VOC2012 {
			first, err1 := r.NumericIDFor(name)
			second, err2 := r.NumericIDFor(name)
			require.NoError(t, err1)
			require.NoError(t, err2)
			assert.Equal(t, first, second)
		}

		a, errA := r.TargetNameFor(CIFAR10, "automobile")
		b, errB := r.TargetNameFor(CIFAR10, "automobile")
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, a, b)
	}
}

func TestResolver_OwnsTables(t *testing.T) {
	tables := catDogTables()
	r := MustNew(tables)

	tables.Target[1] = "mouse"
	tables.Remap["pets"]["cat"] = "bird"

	target, err := r.TargetNameFor("pets", "cat")
	require.NoError(t, err)
	assert.Equal(t, "cat", target)

	got := r.Target()
	got[0] = "changed"
	assert.True(t, slices.Equal([]string{"bird", "cat", "dog"}, r.Target()))
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tables)
		want   error
	}{
		{
			name:   "SelectedWithoutRemap",
			mutate: func(t *Tables) { t.Selection["pets"] = append(t.Selection["pets"], "hamster") },
			want:   ErrUnmappedLabel,
		},
		{
			name:   "RemapOutsideTaxonomy",
			mutate: func(t *Tables) { t.Remap["pets"]["dog"] = "wolf" },
			want:   ErrUnknownTargetLabel,
		},
		{
			name:   "DuplicateTarget",
			mutate: func(t *Tables) { t.Target = append(t.Target, "cat") },
			want:   ErrInvalidTables,
		},
		{
			name:   "TargetEscapesRoot",
			mutate: func(t *Tables) { t.Target = append(t.Target, "../escaped") },
			want:   ErrInvalidTables,
		},
		{
			name:   "TargetNested",
			mutate: func(t *Tables) { t.Target = append(t.Target, "a/b") },
			want:   ErrInvalidTables,
		},
		{
			name:   "TargetDot",
			mutate: func(t *Tables) { t.Target = append(t.Target, ".") },
			want:   ErrInvalidTables,
		},
		{
			name:   "TargetBackslash",
			mutate: func(t *Tables) { t.Target = append(t.Target, `a\b`) },
			want:   ErrInvalidTables,
		},
		{
			name:   "EmptyTaxonomy",
			mutate: func(t *Tables) { t.Target = nil },
			want:   ErrInvalidTables,
		},
		{
			name:   "NonInjectiveWithinDataset",
			mutate: func(t *Tables) { t.Remap["pets"]["dog"] = "cat" },
			want:   ErrInvalidTables,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := catDogTables()
			tt.mutate(&tables)

			_, err := New(tables)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNew_SharedTargetAcrossDatasets(t *testing.T) {
	tables := Tables{
		Selection: map[Dataset][]string{
			"coarse": {"people"},
			"fine":   {"person"},
		},
		Remap: map[Dataset]map[string]string{
			"coarse": {"people": "person"},
			"fine":   {"person": "person"},
		},
		Target: []string{"person"},
	}

	r, err := New(tables)
	require.NoError(t, err)

	a, err := r.TargetNameFor("coarse", "people")
	require.NoError(t, err)
	b, err := r.TargetNameFor("fine", "person")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
