package fluor

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// PercentScale turns a fractional change into a percentage.
const PercentScale = 100.0

// DefaultInitialFrames is the number of leading frames averaged into F0.
const DefaultInitialFrames = 3

// Baseline returns F0, the mean of the first initialFrames values of the net
// signal.
func Baseline(net []float64, initialFrames int) (float64, error) {
	if initialFrames < 1 {
		return 0, fmt.Errorf("%w: initial frame count must be at least 1, got %d", ErrInvalidConfig, initialFrames)
	}

	if len(net) < initialFrames {
		return 0, fmt.Errorf("%w: need %d baseline frames, have %d", ErrInsufficientData, initialFrames, len(net))
	}

	return stat.Mean(net[:initialFrames], nil), nil
}

// Normalize computes F0 from the first initialFrames values of net and returns
// (value-F0)/F0*100 for every value after them. The baseline frames are never
// themselves reported.
func Normalize(net []float64, initialFrames int) (f0 float64, deltaF []float64, err error) {
	if initialFrames >= 1 && len(net) <= initialFrames {
		return 0, nil, fmt.Errorf("%w: %d frames leave nothing after the %d baseline frames", ErrInsufficientData, len(net), initialFrames)
	}

	f0, err = Baseline(net, initialFrames)
	if err != nil {
		return 0, nil, err
	}

	if f0 == 0 {
		return f0, nil, ErrZeroBaseline
	}

	deltaF = make([]float64, 0, len(net)-initialFrames)
	for _, f := range net[initialFrames:] {
		deltaF = append(deltaF, (f-f0)/f0*PercentScale)
	}

	return f0, deltaF, nil
}
