package fluor

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	s := ResultSeries{
		Title:    "cell1.csv",
		F0:       11,
		Time:     []float64{1, 2, 3, 4},
		DeltaF:   []float64{10, 40, -5, 20},
		MaxFrame: 14,
		Skipped:  2,
	}

	sum, err := Summarize(s, 1, 3)
	if err != nil {
		t.Fatal(err)
	}

	if sum.File != "cell1.csv" || sum.Samples != 4 || sum.F0 != 11 || sum.SkippedFields != 2 {
		t.Errorf("Unexpected identifying fields: %+v", sum)
	}

	if sum.Peak != 40 || sum.PeakTime != 2 {
		t.Errorf("Expected a peak of 40 at 2s, got %v at %vs", sum.Peak, sum.PeakTime)
	}

	if sum.Trough != -5 || sum.TroughTime != 3 {
		t.Errorf("Expected a trough of -5 at 3s, got %v at %vs", sum.Trough, sum.TroughTime)
	}

	if sum.Mean != 16.25 {
		t.Errorf("Expected a mean of 16.25, got %v", sum.Mean)
	}

	if sum.Median != 15 {
		t.Errorf("Expected a median of 15, got %v", sum.Median)
	}

	if sum.P95 != 40 {
		t.Errorf("Expected a 95th percentile of 40, got %v", sum.P95)
	}

	if sum.ImagingDuration != 4 {
		t.Errorf("Expected an imaging duration of 4s, got %v", sum.ImagingDuration)
	}
}

func TestSummarizeSingleSample(t *testing.T) {
	sum, err := Summarize(ResultSeries{Time: []float64{1}, DeltaF: []float64{7}}, 1, 3)
	if err != nil {
		t.Fatal(err)
	}

	if sum.SD != 0 || math.IsNaN(sum.SD) || sum.P95 != 7 || sum.Median != 7 {
		t.Errorf("Unexpected single-sample summary: %+v", sum)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if _, err := Summarize(ResultSeries{}, 1, 3); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}

func TestWriteSummaries(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummaries(&buf, []Summary{
		{File: "a.csv", Samples: 3, F0: 11},
		{File: "b.csv", Samples: 5, F0: 2.5},
	})
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected a header and 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}

	header := strings.Split(lines[0], "\t")
	if header[0] != "file" || header[1] != "samples" || header[2] != "f0" {
		t.Errorf("Unexpected header: %v", header)
	}

	if !strings.HasPrefix(lines[1], "a.csv\t3\t") || !strings.HasPrefix(lines[2], "b.csv\t5\t") {
		t.Errorf("Unexpected rows:\n%s", buf.String())
	}
}
