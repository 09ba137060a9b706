package source

import (
	"strings"
	"testing"

	"github.com/hupe1980/pascifar/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadVocabulary(t *testing.T) {
	v, err := ReadVocabulary(label.CIFAR10, strings.NewReader("airplane\r\nautomobile\n\n  bird \n\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, v.Len())

	l, err := v.Label(2)
	require.NoError(t, err)
	assert.Equal(t, Label{Dataset: label.CIFAR10, Name: "bird"}, l)

	_, err = v.Label(3)
	assert.ErrorIs(t, err, ErrMalformedRecord)
	_, err = v.Label(-1)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestReadVocabulary_Empty(t *testing.T) {
	_, err := ReadVocabulary(label.CIFAR10, strings.NewReader("\n\n"))
	assert.Error(t, err)
}

func TestNewVocabulary(t *testing.T) {
	names := []string{"cat", "dog"}
	v := NewVocabulary("pets", names)
	names[0] = "mouse"

	l, err := v.Label(0)
	require.NoError(t, err)
	assert.Equal(t, "cat", l.Name)
}
