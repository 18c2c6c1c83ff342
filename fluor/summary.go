package fluor

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary condenses one recording's ΔF/F0 trace into a single row.
type Summary struct {
	File            string  `csv:"file"`
	Samples         int     `csv:"samples"`
	F0              float64 `csv:"f0"`
	Peak            float64 `csv:"peak_deltaf_f0"`
	PeakTime        float64 `csv:"peak_time_s"`
	Trough          float64 `csv:"trough_deltaf_f0"`
	TroughTime      float64 `csv:"trough_time_s"`
	Mean            float64 `csv:"mean_deltaf_f0"`
	SD              float64 `csv:"sd_deltaf_f0"`
	Median          float64 `csv:"median_deltaf_f0"`
	P95             float64 `csv:"p95_deltaf_f0"` // nearest rank
	ImagingDuration float64 `csv:"imaging_duration_s"`
	SkippedFields   int     `csv:"skipped_fields"`
}

// Summarize computes the summary row of a series. hz and initialFrames are
// those used to build the series.
func Summarize(s ResultSeries, hz float64, initialFrames int) (Summary, error) {
	out := Summary{
		File:            s.Title,
		Samples:         s.Len(),
		F0:              s.F0,
		ImagingDuration: ImagingDuration(s.MaxFrame, hz, initialFrames),
		SkippedFields:   s.Skipped,
	}

	if s.Len() == 0 {
		return out, ErrInsufficientData
	}

	maxIdx, minIdx := floats.MaxIdx(s.DeltaF), floats.MinIdx(s.DeltaF)
	out.Peak, out.PeakTime = s.DeltaF[maxIdx], s.Time[maxIdx]
	out.Trough, out.TroughTime = s.DeltaF[minIdx], s.Time[minIdx]

	// stat.MeanStdDev returns NaN for the SD of a single sample.
	out.Mean, out.SD = stat.MeanStdDev(s.DeltaF, nil)
	if s.Len() < 2 {
		out.SD = 0
	}

	var err error
	data := stats.Float64Data(s.DeltaF)
	if out.Median, err = stats.Median(data); err != nil {
		return out, pfx.Err(err)
	}
	if out.P95, err = stats.PercentileNearestRank(data, 95); err != nil {
		return out, pfx.Err(err)
	}

	return out, nil
}

// WriteSummaries writes one tab-delimited row per summary, with a header.
func WriteSummaries(w io.Writer, summaries []Summary) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := gocsv.MarshalCSV(&summaries, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return pfx.Err(err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
