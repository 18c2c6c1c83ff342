package fluor

import (
	"fmt"
	"math"

	"github.com/jfcg/butter"
)

// settleSamples is how many copies of the first value are fed through a
// filter before the real data.
const settleSamples = 256

// LowPass runs a first-order Butterworth low-pass filter over vals, which were
// sampled at signalHz, blocking content above cutoffHz. The filter is settled
// on the first value before use so the output does not ramp up from zero.
func LowPass(vals []float64, signalHz, cutoffHz float64) ([]float64, error) {
	wc := 2.0 * math.Pi * cutoffHz / signalHz

	filt := butter.NewLowPass1(wc)
	if filt == nil {
		return nil, fmt.Errorf("%w: invalid low-pass filter (attempted wc=%f, but expect .0001 < wc && wc < 3.1415)", ErrInvalidConfig, wc)
	}

	if len(vals) == 0 {
		return []float64{}, nil
	}

	for i := 0; i < settleSamples; i++ {
		filt.Next(vals[0])
	}

	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		out = append(out, filt.Next(v))
	}

	return out, nil
}
