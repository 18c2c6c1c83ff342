package fluor

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/deltaf"
	"github.com/carbocation/pfx"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1024 * 1024

// Column positions within a measurement row.
const (
	FrameColumn = iota
	MeanColumn
)

// Records holds what could be parsed from one measurement file. Frames and
// Means are filled independently: a row whose frame index is garbled still
// contributes its mean, and vice versa.
type Records struct {
	Frames []int
	Means  []float64

	// Skipped counts fields (not rows) that failed to parse.
	Skipped int
}

// MaxFrame returns the largest frame index seen, or 0 if there were none.
func (r Records) MaxFrame() int {
	max := 0
	for _, v := range r.Frames {
		if v > max {
			max = v
		}
	}

	return max
}

// ParseFrame attempts to read an integer frame index. ok is false if the
// field is not an integer.
func ParseFrame(field string) (frame int, ok bool) {
	v, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, false
	}

	return v, true
}

// ParseMean attempts to read a mean intensity value. ok is false if the field
// is not a number.
func ParseMean(field string) (mean float64, ok bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

// ReadRecords parses a measurement stream. If delim is 0, the delimiter is
// detected from the head of the stream.
func ReadRecords(r io.Reader, delim rune) (Records, error) {
	br := bufio.NewReader(r)
	if delim == 0 {
		delim = deltaf.SniffDelimiter(br)
	}

	return ParseRecords(br, delim)
}

// ParseRecords reads delimited rows of "frame<delim>mean", one per line.
// Fields that fail to parse are skipped individually and never abort the
// file, so header and footer lines simply fall away. Quotes carry no meaning:
// a stray quote only spoils the field it sits in. Blank lines are ignored.
// Only read errors are returned.
func ParseRecords(r io.Reader, delim rune) (Records, error) {
	out := Records{
		Frames: make([]int, 0),
		Means:  make([]float64, 0),
	}

	sep := string(delim)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := strings.Split(line, sep)

		if frame, ok := ParseFrame(cols[FrameColumn]); ok {
			out.Frames = append(out.Frames, frame)
		} else {
			out.Skipped++
		}

		if len(cols) > MeanColumn {
			if mean, ok := ParseMean(cols[MeanColumn]); ok {
				out.Means = append(out.Means, mean)
			} else {
				out.Skipped++
			}
		} else {
			out.Skipped++
		}
	}

	if err := scanner.Err(); err != nil {
		return out, pfx.Err(err)
	}

	return out, nil
}
