package label

import (
	"errors"
	"fmt"
)

var (
	// ErrUnmappedLabel is matched by UnmappedLabelError.
	ErrUnmappedLabel = errors.New("label: selected source label has no remap entry")

	// ErrUnknownTargetLabel is matched by UnknownTargetLabelError.
	ErrUnknownTargetLabel = errors.New("label: target label is not part of the taxonomy")

	// ErrInvalidTables is returned by New for structurally broken tables.
	ErrInvalidTables = errors.New("label: invalid tables")
)

// UnmappedLabelError indicates a selected source label without a remap entry.
type UnmappedLabelError struct {
	Dataset Dataset
	Name    string
}

func (e *UnmappedLabelError) Error() string {
	return fmt.Sprintf("label: %s/%q is selected but has no remap entry", e.Dataset, e.Name)
}

func (e *UnmappedLabelError) Is(target error) bool { return target == ErrUnmappedLabel }

// UnknownTargetLabelError indicates a name outside the target taxonomy.
type UnknownTargetLabelError struct {
	Name string
}

func (e *UnknownTargetLabelError) Error() string {
	return fmt.Sprintf("label: %q is not part of the target taxonomy", e.Name)
}

func (e *UnknownTargetLabelError) Is(target error) bool { return target == ErrUnknownTargetLabel }
