package fluor

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Axis labels of the ΔF/F0 plot.
const (
	XLabel = "time (s)"
	YLabel = "DeltaF/F0 (%)"
)

// PlotSpec describes one line plot. Width and Height are in pixels.
type PlotSpec struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
	Width  int
	Height int
}

// NewPlotSpec builds the ΔF/F0-versus-time plot for a series.
func NewPlotSpec(s ResultSeries, width, height int) PlotSpec {
	return PlotSpec{
		Title:  s.Title,
		XLabel: XLabel,
		YLabel: YLabel,
		X:      s.Time,
		Y:      s.DeltaF,
		Width:  width,
		Height: height,
	}
}

// Plotter renders a PlotSpec as an image. Extension is the file extension,
// without a dot, of what Render produces.
type Plotter interface {
	Render(w io.Writer, spec PlotSpec) error
	Extension() string
}

// NewPlotter returns the named backend ("gochart" or "gonum") producing the
// given format.
func NewPlotter(backend, format string) (Plotter, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))

	switch strings.ToLower(backend) {
	case "", "gochart", "go-chart":
		if format != "png" && format != "svg" {
			return nil, fmt.Errorf("%w: go-chart cannot render %q, use png or svg", ErrInvalidConfig, format)
		}
		return ChartPlotter{Format: format}, nil
	case "gonum":
		if format != "png" && format != "svg" && format != "pdf" {
			return nil, fmt.Errorf("%w: gonum cannot render %q, use png, svg or pdf", ErrInvalidConfig, format)
		}
		return GonumPlotter{Format: format}, nil
	}

	return nil, fmt.Errorf("%w: unknown plotter %q", ErrInvalidConfig, backend)
}

// ChartPlotter renders with go-chart.
type ChartPlotter struct {
	Format string
}

func (p ChartPlotter) Extension() string { return p.Format }

func (p ChartPlotter) Render(w io.Writer, spec PlotSpec) error {
	if len(spec.X) != len(spec.Y) || len(spec.X) == 0 {
		return fmt.Errorf("cannot plot %d x values against %d y values", len(spec.X), len(spec.Y))
	}

	graph := chart.Chart{
		Title:  spec.Title,
		Width:  spec.Width,
		Height: spec.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name: spec.XLabel,
		},
		YAxis: chart.YAxis{
			Name:           spec.YLabel,
			ValueFormatter: chart.FloatValueFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: spec.X,
				YValues: spec.Y,
			},
		},
	}

	// go-chart refuses zero-width ranges, which a single sample or a flat
	// trace would otherwise produce.
	if lo, hi, flat := span(spec.X); flat {
		graph.XAxis.Range = &chart.ContinuousRange{Min: lo, Max: hi}
	}
	if lo, hi, flat := span(spec.Y); flat {
		graph.YAxis.Range = &chart.ContinuousRange{Min: lo, Max: hi}
	}

	renderer := chart.PNG
	if p.Format == "svg" {
		renderer = chart.SVG
	}

	if err := graph.Render(renderer, w); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// GonumPlotter renders with gonum/plot.
type GonumPlotter struct {
	Format string
}

func (p GonumPlotter) Extension() string { return p.Format }

func (p GonumPlotter) Render(w io.Writer, spec PlotSpec) error {
	if len(spec.X) != len(spec.Y) || len(spec.X) == 0 {
		return fmt.Errorf("cannot plot %d x values against %d y values", len(spec.X), len(spec.Y))
	}

	pl := plot.New()
	pl.Title.Text = spec.Title
	pl.X.Label.Text = spec.XLabel
	pl.Y.Label.Text = spec.YLabel

	pts := make(plotter.XYs, len(spec.X))
	for i := range spec.X {
		pts[i].X = spec.X[i]
		pts[i].Y = spec.Y[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return pfx.Err(err)
	}
	line.Width = vg.Points(1)
	pl.Add(line)

	wt, err := pl.WriterTo(pixels(spec.Width), pixels(spec.Height), p.Format)
	if err != nil {
		return pfx.Err(err)
	}

	if _, err := wt.WriteTo(w); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// pixels converts a pixel count to a vg length at gonum's default 96 DPI.
func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / 96
}

// span reports the min and max of vals. If they are equal, flat is true and
// the bounds are widened by one unit either way.
func span(vals []float64) (lo, hi float64, flat bool) {
	lo, hi = floats.Min(vals), floats.Max(vals)
	if lo != hi || math.IsNaN(lo) {
		return lo, hi, false
	}

	return lo - 1, hi + 1, true
}
