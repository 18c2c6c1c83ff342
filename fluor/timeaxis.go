package fluor

import (
	"fmt"
	"math"
)

// DefaultSamplingHz is the frame rate assumed for recordings.
const DefaultSamplingHz = 1.0

// TimeAxis returns n timestamps in seconds, starting at 1/hz with a step of
// 1/hz. The first normalized sample follows the baseline frames, so it sits
// one frame interval after time zero.
func TimeAxis(n int, hz float64) ([]float64, error) {
	if hz <= 0 || math.IsInf(hz, 0) || math.IsNaN(hz) {
		return nil, fmt.Errorf("%w: sampling rate must be positive and finite, got %v", ErrInvalidConfig, hz)
	}

	out := make([]float64, n)
	for k := range out {
		// Not a running sum, so no drift.
		out[k] = float64(k+1) / hz
	}

	return out, nil
}

// ImagingDuration is the recording length in seconds after the baseline
// frames, estimated from the largest frame index of an interleaved recording
// (two rows per frame).
func ImagingDuration(maxFrame int, hz float64, initialFrames int) float64 {
	return float64(maxFrame)/(2*hz) - float64(initialFrames)
}

// FrameCountAxisLen is how many timestamps the frame-count estimate would
// produce: the values k/hz, k >= 1, that fall below duration+1/hz. It is only
// used to flag recordings whose frame numbering disagrees with their data.
func FrameCountAxisLen(duration, hz float64) int {
	n := int(math.Ceil(duration * hz))
	if n < 0 {
		return 0
	}

	return n
}
