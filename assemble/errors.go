package assemble

import (
	"errors"
	"fmt"
)

var (
	// ErrFilesystem is returned when a directory or image cannot be written.
	ErrFilesystem = errors.New("assemble: filesystem error")

	// ErrDecode is returned when a selected record cannot be turned into an image.
	ErrDecode = errors.New("assemble: decode error")
)

// RecordError describes the record that stopped an Assemble call.
type RecordError struct {
	Source string
	Index  int // zero-based position within the source
	Target string
	Err    error
}

func (e *RecordError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("assemble: %s record %d: %v", e.Source, e.Index, e.Err)
	}
	return fmt.Sprintf("assemble: %s record %d (%s): %v", e.Source, e.Index, e.Target, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
