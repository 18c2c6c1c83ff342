package fluor

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTimeAxisMatchesLengthAndStep(t *testing.T) {
	for _, hz := range []float64{1, 2, 0.5, 3, 10, 29.97} {
		for _, n := range []int{0, 1, 3, 100, 1001} {
			axis, err := TimeAxis(n, hz)
			if err != nil {
				t.Fatal(err)
			}

			if len(axis) != n {
				t.Fatalf("hz=%v: expected %d samples, got %d", hz, n, len(axis))
			}

			if n == 0 {
				continue
			}

			step := 1 / hz
			if math.Abs(axis[0]-step) > 1e-12 {
				t.Errorf("hz=%v: expected the axis to start at %v, got %v", hz, step, axis[0])
			}

			for i := 1; i < n; i++ {
				if axis[i] <= axis[i-1] {
					t.Fatalf("hz=%v: axis is not strictly increasing at %d", hz, i)
				}
				if d := axis[i] - axis[i-1]; math.Abs(d-step) > 1e-9*math.Max(1, axis[i]) {
					t.Fatalf("hz=%v: step %d is %v, expected %v", hz, i, d, step)
				}
			}
		}
	}
}

func TestTimeAxisOneHertz(t *testing.T) {
	axis, err := TimeAxis(3, 1)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]float64{1, 2, 3}, axis); diff != "" {
		t.Errorf("Axis mismatch (-want +got):\n%s", diff)
	}
}

func TestTimeAxisRejectsBadRate(t *testing.T) {
	for _, hz := range []float64{0, -1, math.Inf(1), math.NaN()} {
		if _, err := TimeAxis(3, hz); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("hz=%v: expected ErrInvalidConfig, got %v", hz, err)
		}
	}
}

func TestFrameCountEstimate(t *testing.T) {
	// 12 interleaved rows = 6 frames, 3 of which are baseline
	duration := ImagingDuration(12, 1, 3)
	if duration != 3 {
		t.Errorf("Expected a duration of 3s, got %v", duration)
	}
	if n := FrameCountAxisLen(duration, 1); n != 3 {
		t.Errorf("Expected 3 samples, got %d", n)
	}

	if n := FrameCountAxisLen(ImagingDuration(4, 1, 3), 1); n != 0 {
		t.Errorf("Expected no samples for a negative duration, got %d", n)
	}

	// At 2 Hz, 40 rows = 20 frames = 10s, less 3 baseline frames
	if n := FrameCountAxisLen(ImagingDuration(40, 2, 3), 2); n != 14 {
		t.Errorf("Expected 14 samples, got %d", n)
	}
}
