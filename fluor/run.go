package fluor

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/deltaf"
)

// histogramBins is the number of buckets in the debug histogram.
const histogramBins = 20

// Report describes a finished batch. Slices follow recording name order.
type Report struct {
	Artifacts []Artifacts
	Summaries []Summary
	Failed    []*RecordingError

	// NotAttempted counts recordings left unprocessed after the batch
	// stopped early.
	NotAttempted int
}

// Runner processes every matching recording of a Source and emits its
// artifacts.
type Runner struct {
	Source  deltaf.Source
	Emitter Emitter
	Config  Config

	debugMu sync.Mutex
}

type outcome struct {
	attempted bool
	artifacts Artifacts
	summary   Summary
	err       error
}

// Run processes the batch. Recordings are taken in name order; with more than
// one worker they overlap, but the table and plot of a given recording are
// always written by the same goroutine.
//
// With ContinueOnError, failed recordings are logged and skipped and Run
// returns the report along with a *BatchError naming them. Otherwise the first
// failure stops the batch and is returned as a *RecordingError.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	report := Report{}

	if err := r.Config.Validate(); err != nil {
		return report, err
	}

	names, err := r.Source.List(ctx, r.Config.Pattern)
	if err != nil {
		return report, err
	}

	if len(names) == 0 {
		log.Printf("No recordings matching %q in %s\n", r.Config.Pattern, r.Source)
		return report, nil
	}

	log.Printf("Processing %d recordings from %s\n", len(names), r.Source)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	outcomes := make([]outcome, len(names))

	sem := make(chan bool, r.Config.Workers)
	for i, name := range names {
		sem <- true
		if runCtx.Err() != nil {
			<-sem
			break
		}

		go func(i int, name string) {
			defer func() { <-sem }()

			outcomes[i] = r.processOne(runCtx, name)
			if outcomes[i].err != nil && !r.Config.ContinueOnError {
				cancel()
			}
		}(i, name)
	}

	for i := 0; i < cap(sem); i++ {
		sem <- true
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	for i, v := range outcomes {
		if !v.attempted {
			report.NotAttempted++
			continue
		}

		if v.err != nil {
			// Recordings interrupted because another one failed are not
			// failures of their own.
			if errors.Is(v.err, context.Canceled) {
				report.NotAttempted++
				continue
			}
			report.Failed = append(report.Failed, &RecordingError{Name: names[i], Err: v.err})
			continue
		}

		report.Artifacts = append(report.Artifacts, v.artifacts)
		report.Summaries = append(report.Summaries, v.summary)
	}

	if !r.Config.ContinueOnError && len(report.Failed) > 0 {
		return report, report.Failed[0]
	}

	if r.Config.Summary && len(report.Summaries) > 0 {
		summaryPath := r.Emitter.Layout.SummaryPath()
		if err := writeRendered(summaryPath, func(w io.Writer) error {
			return WriteSummaries(w, report.Summaries)
		}); err != nil {
			return report, err
		}
		log.Println("Wrote", summaryPath)
	}

	log.Printf("Finished: %d succeeded, %d failed\n", len(report.Artifacts), len(report.Failed))

	if len(report.Failed) > 0 {
		return report, &BatchError{Failed: report.Failed, Succeeded: len(report.Artifacts)}
	}

	return report, nil
}

func (r *Runner) processOne(ctx context.Context, name string) (out outcome) {
	if ctx.Err() != nil {
		return out
	}
	out.attempted = true

	s, err := ProcessRecording(ctx, r.Source, name, r.Config)
	if err != nil {
		out.err = err
		log.Printf("%s: %v\n", name, err)
		return out
	}

	if out.summary, err = Summarize(s, r.Config.SamplingHz, r.Config.InitialFrames); err != nil {
		out.err = err
		log.Printf("%s: %v\n", name, err)
		return out
	}

	if r.Config.Debug {
		r.printHistogram(s)
	}

	if out.artifacts, err = r.Emitter.Emit(s); err != nil {
		out.err = err
		log.Printf("%s: %v\n", name, err)
		return out
	}

	log.Printf("%s: F0=%.6g, %d samples, peak %.4g%% at %gs\n", name, s.F0, s.Len(), out.summary.Peak, out.summary.PeakTime)

	return out
}

func (r *Runner) printHistogram(s ResultSeries) {
	w := r.Config.DebugOut
	if w == nil {
		return
	}

	r.debugMu.Lock()
	defer r.debugMu.Unlock()

	hist := histogram.Hist(histogramBins, s.DeltaF)
	if _, err := io.WriteString(w, s.Title+" ΔF/F0 (%) distribution:\n"); err != nil {
		return
	}
	if err := histogram.Fprint(w, hist, histogram.Linear(40)); err != nil {
		log.Println(err)
	}
}
