package fluor

import (
	"fmt"
	"io"
	"math"
	"os"
	"path"
)

// DefaultPattern selects the recordings of a batch.
const DefaultPattern = "*.csv"

// Config holds the per-batch analysis settings. It is read-only once a batch
// starts.
type Config struct {
	// InitialFrames is how many leading frames are averaged into F0.
	InitialFrames int

	// SamplingHz is the frame rate of the recordings.
	SamplingHz float64

	// LowPassHz, if positive, low-pass filters the net signal before the
	// baseline is computed.
	LowPassHz float64

	// Delimiter of the input files. Zero means detect it per file.
	Delimiter rune

	// Pattern selects recordings by name, ignoring compression suffixes.
	Pattern string

	// ContinueOnError keeps the batch going past recordings that fail, and
	// reports them together at the end. When false the first failure stops
	// the batch.
	ContinueOnError bool

	// Workers is the number of recordings processed at once.
	Workers int

	// Summary writes summary.tsv into the results root.
	Summary bool

	// Debug prints a histogram of each recording's ΔF/F0 values to DebugOut.
	Debug    bool
	DebugOut io.Writer
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		InitialFrames:   DefaultInitialFrames,
		SamplingHz:      DefaultSamplingHz,
		Pattern:         DefaultPattern,
		ContinueOnError: true,
		Workers:         1,
		Summary:         true,
		DebugOut:        os.Stderr,
	}
}

// Validate rejects settings that cannot produce a result.
func (c Config) Validate() error {
	if c.InitialFrames < 1 {
		return fmt.Errorf("%w: initial frame count must be at least 1, got %d", ErrInvalidConfig, c.InitialFrames)
	}

	if c.SamplingHz <= 0 || math.IsInf(c.SamplingHz, 0) || math.IsNaN(c.SamplingHz) {
		return fmt.Errorf("%w: sampling rate must be positive and finite, got %v", ErrInvalidConfig, c.SamplingHz)
	}

	if c.LowPassHz < 0 {
		return fmt.Errorf("%w: low-pass cutoff cannot be negative, got %v", ErrInvalidConfig, c.LowPassHz)
	}

	if c.Workers < 1 {
		return fmt.Errorf("%w: need at least 1 worker, got %d", ErrInvalidConfig, c.Workers)
	}

	if _, err := path.Match(c.Pattern, ""); err != nil {
		return fmt.Errorf("%w: bad pattern %q: %v", ErrInvalidConfig, c.Pattern, err)
	}

	return nil
}
