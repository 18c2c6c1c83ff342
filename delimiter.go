package deltaf

import (
	"bufio"
	"bytes"
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// sniffBytes is how much of a recording is inspected to guess its delimiter.
const sniffBytes = 4096

// Delimiters that DetermineDelimiter will report. Anything else the detector
// finds (such as the decimal point in every intensity value) is ignored.
var knownDelimiters = []rune{',', '\t', ';', '|'}

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file. Falls back to a comma.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	for _, known := range knownDelimiters {
		for _, v := range delimiters {
			if v == string(known) {
				return known
			}
		}
	}

	return ','
}

// SniffDelimiter peeks at the head of br without consuming it and returns the
// detected delimiter. br can be read from the start afterwards.
func SniffDelimiter(br *bufio.Reader) rune {
	head, _ := br.Peek(sniffBytes)
	if len(head) == 0 {
		return ','
	}

	// The detector treats whitespace as content, so a tab-only file is
	// recognized here.
	if bytes.IndexByte(head, '\t') >= 0 && bytes.IndexByte(head, ',') < 0 {
		return '\t'
	}

	return DetermineDelimiter(bytes.NewReader(head))
}
