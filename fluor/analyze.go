package fluor

import (
	"context"
	"fmt"
	"log"

	"github.com/carbocation/deltaf"
)

// Analyze turns parsed records into a ResultSeries: split the channels,
// subtract background, normalize to the baseline and attach a time axis sized
// to the normalized signal.
func Analyze(name string, rec Records, cfg Config) (ResultSeries, error) {
	out := ResultSeries{
		Name:     BaseName(name),
		Title:    name,
		MaxFrame: rec.MaxFrame(),
		Skipped:  rec.Skipped,
	}

	if need := 2 * (cfg.InitialFrames + 1); len(rec.Means) < need {
		return out, fmt.Errorf("%w: %d valid intensity values, need at least %d for %d baseline frames", ErrInsufficientData, len(rec.Means), need, cfg.InitialFrames)
	}

	net := Split(rec.Means).NetSignal()

	if cfg.LowPassHz > 0 {
		var err error
		if net, err = LowPass(net, cfg.SamplingHz, cfg.LowPassHz); err != nil {
			return out, err
		}
	}

	f0, deltaF, err := Normalize(net, cfg.InitialFrames)
	if err != nil {
		return out, err
	}

	timeAxis, err := TimeAxis(len(deltaF), cfg.SamplingHz)
	if err != nil {
		return out, err
	}

	out.F0 = f0
	out.DeltaF = deltaF
	out.Time = timeAxis

	return out, nil
}

// ProcessRecording reads one recording from src and analyzes it.
func ProcessRecording(ctx context.Context, src deltaf.Source, name string, cfg Config) (ResultSeries, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return ResultSeries{Name: BaseName(name), Title: name}, err
	}

	// Closing r also closes rc.
	r, err := deltaf.MaybeDecompress(rc)
	if err != nil {
		rc.Close()
		return ResultSeries{Name: BaseName(name), Title: name}, err
	}
	defer r.Close()

	rec, err := ReadRecords(r, cfg.Delimiter)
	if err != nil {
		return ResultSeries{Name: BaseName(name), Title: name}, err
	}

	s, err := Analyze(name, rec, cfg)
	if err != nil {
		return s, err
	}

	if want := FrameCountAxisLen(ImagingDuration(s.MaxFrame, cfg.SamplingHz, cfg.InitialFrames), cfg.SamplingHz); want != s.Len() {
		log.Printf("%s: frame numbering implies %d samples but %d were computed; the time axis follows the data\n", name, want, s.Len())
	}

	return s, nil
}
