package fluor

import (
	"path"
	"strings"

	"github.com/carbocation/deltaf"
)

// ResultSeries is everything computed for one recording. Time and DeltaF are
// always the same length.
type ResultSeries struct {
	// Name is the base used for artifact file names.
	Name string

	// Title is the recording's original file name.
	Title string

	F0       float64
	Time     []float64
	DeltaF   []float64
	MaxFrame int

	// Skipped counts fields of the input that failed to parse.
	Skipped int
}

// Len is the number of retained samples.
func (s ResultSeries) Len() int { return len(s.DeltaF) }

// BaseName derives the artifact base from a recording's file name: directory,
// compression suffix and final extension are removed, so "cell1.csv.gz"
// becomes "cell1".
func BaseName(file string) string {
	base := deltaf.TrimCompressionSuffix(path.Base(file))
	return strings.TrimSuffix(base, path.Ext(base))
}
