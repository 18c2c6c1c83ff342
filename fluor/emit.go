package fluor

import (
	"bytes"
	"io"
	"os"

	"github.com/carbocation/pfx"
)

// Default plot size, in pixels.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Artifacts are the files written for one recording.
type Artifacts struct {
	Table string
	Plot  string
}

// Emitter writes the table and plot of a ResultSeries into a Layout.
type Emitter struct {
	Layout  Layout
	Plotter Plotter
	Width   int
	Height  int

	// Delimiter of the output table; a comma if zero.
	Delimiter rune
}

// Emit writes the table first and then the plot. Each artifact is rendered in
// memory before its file is created, so a failed render leaves no partial
// file behind.
func (e Emitter) Emit(s ResultSeries) (Artifacts, error) {
	out := Artifacts{
		Table: e.Layout.TablePath(s.Name),
		Plot:  e.Layout.PlotPath(s.Name, e.Plotter.Extension()),
	}

	if err := writeRendered(out.Table, func(w io.Writer) error {
		return WriteTable(w, s, e.Delimiter)
	}); err != nil {
		return out, err
	}

	width, height := e.Width, e.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	if err := writeRendered(out.Plot, func(w io.Writer) error {
		return e.Plotter.Render(w, NewPlotSpec(s, width, height))
	}); err != nil {
		return out, err
	}

	return out, nil
}

func writeRendered(path string, render func(io.Writer) error) error {
	buffer := bytes.NewBuffer([]byte{})
	if err := render(buffer); err != nil {
		return err
	}

	outFile, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if _, err := buffer.WriteTo(outFile); err != nil {
		outFile.Close()
		return pfx.Err(err)
	}

	if err := outFile.Close(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
