package fluor

import (
	"bytes"
	"testing"
)

func TestWriteTable(t *testing.T) {
	s := ResultSeries{
		Name:   "cell1",
		Time:   []float64{1, 2, 3},
		DeltaF: []float64{81.81818181818183, -12.5, 0},
	}

	var buf bytes.Buffer
	if err := WriteTable(&buf, s, 0); err != nil {
		t.Fatal(err)
	}

	expected := "time (s),deltaF/F0 (%)\n" +
		"1.0,81.81818181818183\n" +
		"2.0,-12.5\n" +
		"3.0,0.0\n"

	if buf.String() != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, buf.String())
	}
}

func TestWriteTableIsDeterministic(t *testing.T) {
	s := ResultSeries{
		Name:   "cell1",
		Time:   []float64{0.5, 1, 1.5},
		DeltaF: []float64{1.0 / 3, 2.0 / 3, 1e-7},
	}

	var first, second bytes.Buffer
	if err := WriteTable(&first, s, ','); err != nil {
		t.Fatal(err)
	}
	if err := WriteTable(&second, s, ','); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("Two writes of the same series differ")
	}
}

func TestWriteTableTabDelimited(t *testing.T) {
	s := ResultSeries{Time: []float64{1}, DeltaF: []float64{2}}

	var buf bytes.Buffer
	if err := WriteTable(&buf, s, '\t'); err != nil {
		t.Fatal(err)
	}

	if expected := "time (s)\tdeltaF/F0 (%)\n1.0\t2.0\n"; buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestWriteTableRejectsMismatchedLengths(t *testing.T) {
	s := ResultSeries{Time: []float64{1, 2}, DeltaF: []float64{2}}

	if err := WriteTable(&bytes.Buffer{}, s, ','); err == nil {
		t.Error("Expected an error for mismatched lengths")
	}
}

func TestFormatFloat(t *testing.T) {
	for input, expected := range map[float64]string{
		1:        "1.0",
		-3:       "-3.0",
		0.1:      "0.1",
		1e-7:     "1e-07",
		123456.5: "123456.5",
		1234567:  "1234567.0",
		-2.5e7:   "-25000000.0",
		0.0001:   "0.0001",
		0.00005:  "5e-05",
		1e15:     "1000000000000000.0",
		1e16:     "1e+16",
		1e21:     "1e+21",
		0:        "0.0",
	} {
		if got := FormatFloat(input); got != expected {
			t.Errorf("FormatFloat(%v): expected %s, got %s", input, expected, got)
		}
	}
}
