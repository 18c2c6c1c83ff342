package fluor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInsufficientData means a recording has too few values to compute a
	// baseline and at least one normalized sample.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrZeroBaseline means the baseline F0 is exactly zero, so ΔF/F0 is
	// undefined.
	ErrZeroBaseline = errors.New("baseline F0 is zero")

	// ErrOutputConflict means the results directory already exists and the
	// layout policy forbids reusing it.
	ErrOutputConflict = errors.New("results directory already exists")

	// ErrInvalidConfig is returned for settings that cannot produce a result,
	// such as a non-positive sampling rate.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// RecordingError ties a file-fatal error to the recording that produced it.
type RecordingError struct {
	Name string
	Err  error
}

func (e *RecordingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *RecordingError) Unwrap() error { return e.Err }

// BatchError is returned by Run when some recordings failed but the batch was
// allowed to continue past them.
type BatchError struct {
	Failed    []*RecordingError
	Succeeded int
}

func (e *BatchError) Error() string {
	names := make([]string, 0, len(e.Failed))
	for _, v := range e.Failed {
		names = append(names, v.Name)
	}

	return fmt.Sprintf("%d of %d recordings failed: %s", len(e.Failed), len(e.Failed)+e.Succeeded, strings.Join(names, ", "))
}

// Unwrap exposes the per-recording errors to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	out := make([]error, 0, len(e.Failed))
	for _, v := range e.Failed {
		out = append(out, v)
	}

	return out
}
