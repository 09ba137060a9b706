package pascifar

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/pascifar/acquire"
	"github.com/hupe1980/pascifar/assemble"
	"github.com/hupe1980/pascifar/imaging"
	"github.com/hupe1980/pascifar/label"
	"github.com/hupe1980/pascifar/source"
)

var (
	// ErrAcquisition is returned when a source archive cannot be fetched
	// or unpacked.
	ErrAcquisition = errors.New("acquisition failed")

	// ErrConfiguration is returned when the label tables are inconsistent.
	ErrConfiguration = errors.New("inconsistent label tables")

	// ErrDecode is returned when a source record cannot be decoded.
	ErrDecode = errors.New("decode failed")

	// ErrFilesystem is returned when the output cannot be written.
	ErrFilesystem = errors.New("filesystem error")
)

// Stage names a step of the build.
type Stage string

const (
	StageValidate Stage = "validate"
	StageAcquire  Stage = "acquire"
	StageAssemble Stage = "assemble"
	StageManifest Stage = "manifest"
	StagePublish  Stage = "publish"
)

// StageError reports the build stage that failed.
//
// The original underlying error can be accessed via errors.Unwrap.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pascifar: %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// stageError classifies err and attributes it to stage.
func stageError(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: translateError(stage, err)}
}

func translateError(stage Stage, err error) error {
	switch {
	case errors.Is(err, acquire.ErrAcquisition):
		return fmt.Errorf("%w: %w", ErrAcquisition, err)
	case errors.Is(err, label.ErrUnmappedLabel),
		errors.Is(err, label.ErrUnknownTargetLabel),
		errors.Is(err, label.ErrInvalidTables):
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	case errors.Is(err, assemble.ErrDecode),
		errors.Is(err, imaging.ErrPixelLength),
		errors.Is(err, source.ErrMalformedRecord):
		return fmt.Errorf("%w: %w", ErrDecode, err)
	case errors.Is(err, assemble.ErrFilesystem):
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	// Remaining failures of the writing stages come from the file system.
	switch stage {
	case StageAssemble, StageManifest:
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}
	return err
}
