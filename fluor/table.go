package fluor

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// Column headers of the ΔF/F0 table.
var TableHeader = []string{"time (s)", "deltaF/F0 (%)"}

// WriteTable writes the header and one (time, ΔF/F0) row per sample. Quoting
// is minimal and numbers are formatted in their shortest exact form, so the
// same series always produces the same bytes.
func WriteTable(w io.Writer, s ResultSeries, delim rune) error {
	if len(s.Time) != len(s.DeltaF) {
		return fmt.Errorf("%s: time axis has %d samples but ΔF/F0 has %d", s.Name, len(s.Time), len(s.DeltaF))
	}

	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}

	if err := cw.Write(TableHeader); err != nil {
		return pfx.Err(err)
	}

	row := make([]string, 2)
	for i := range s.DeltaF {
		row[0] = FormatFloat(s.Time[i])
		row[1] = FormatFloat(s.DeltaF[i])
		if err := cw.Write(row); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// FormatFloat renders v in the shortest form that round-trips. Magnitudes in
// [1e-4, 1e16) are written in positional notation, others in exponent form,
// and finite integral values always carry a decimal point ("1.0", not "1").
func FormatFloat(v float64) string {
	format := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		format = 'g'
	}

	out := strconv.FormatFloat(v, format, -1, 64)
	if strings.ContainsAny(out, ".eEIN") {
		return out
	}

	return out + ".0"
}
