package deltaf

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDetectDataType(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	zw.Write([]byte("1,100\n"))
	zw.Close()

	for _, v := range []struct {
		Name     string
		Head     []byte
		Expected DataType
	}{
		{"gzip", gz.Bytes(), DataTypeGzip},
		{"zip", []byte{0x50, 0x4b, 0x03, 0x04, 0x14, 0x00}, DataTypeZip},
		{"xz", []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, DataTypeXZ},
		{"bzip2", []byte("BZh91AY"), DataTypeBZip2},
		{"plain", []byte(" ,Mean\n1,100\n"), DataTypeNoCompression},
		{"short", []byte{0x1f}, DataTypeNoCompression},
	} {
		if dt := DetectDataType(v.Head); dt != v.Expected {
			t.Errorf("%s: expected %d, got %d", v.Name, v.Expected, dt)
		}
	}
}

func TestMaybeDecompress(t *testing.T) {
	payload := "1,100\n2,20\n3,102\n4,22\n"

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	if _, err := zw.Write([]byte(payload)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	for name, input := range map[string][]byte{
		"gzip":  gz.Bytes(),
		"plain": []byte(payload),
		"tiny":  []byte("1"),
	} {
		rc, err := MaybeDecompress(io.NopCloser(bytes.NewReader(input)))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		got, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if err := rc.Close(); err != nil {
			t.Fatalf("%s: %v", name, err)
		}

		want := payload
		if name == "tiny" {
			want = "1"
		}
		if string(got) != want {
			t.Errorf("%s: expected %q, got %q", name, want, got)
		}
	}
}

func TestTrimCompressionSuffix(t *testing.T) {
	for input, expected := range map[string]string{
		"cell1.csv.gz":  "cell1.csv",
		"cell1.csv.xz":  "cell1.csv",
		"cell1.csv.zip": "cell1.csv",
		"cell1.csv":     "cell1.csv",
	} {
		if got := TrimCompressionSuffix(input); got != expected {
			t.Errorf("%s: expected %s, got %s", input, expected, got)
		}
	}
}

func TestSniffDelimiter(t *testing.T) {
	for _, v := range []struct {
		Name     string
		Input    string
		Expected rune
	}{
		{"comma", " ,Mean\n1,100.5\n2,20.25\n3,102.75\n4,22.5\n", ','},
		{"tab", " \tMean\n1\t100.5\n2\t20.25\n3\t102.75\n4\t22.5\n", '\t'},
		{"empty", "", ','},
	} {
		br := bufio.NewReader(strings.NewReader(v.Input))
		if got := SniffDelimiter(br); got != v.Expected {
			t.Errorf("%s: expected %q, got %q", v.Name, v.Expected, got)
		}

		// Sniffing must not consume input
		rest, _ := io.ReadAll(br)
		if string(rest) != v.Input {
			t.Errorf("%s: sniffing consumed input", v.Name)
		}
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.csv", "c.csv.gz", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("1,1\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "Results.csv"), 0755); err != nil {
		t.Fatal(err)
	}

	src, err := NewSource(dir, nil)
	if err != nil {
		t.Fatal(err)
	}

	names, err := src.List(context.Background(), "*.csv")
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"a.csv", "b.csv", "c.csv.gz"}, names); diff != "" {
		t.Errorf("Unexpected listing (-want +got):\n%s", diff)
	}

	rc, err := src.Open(context.Background(), "a.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	if bts, _ := io.ReadAll(rc); string(bts) != "1,1\n" {
		t.Errorf("Unexpected content %q", bts)
	}
}

func TestNewSourceGoogleStorageNeedsClient(t *testing.T) {
	if _, err := NewSource("gs://bucket/recordings", nil); err == nil {
		t.Error("Expected an error without a storage client")
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/data/path")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/data/path" {
		t.Errorf("Absolute paths should be unchanged, got %s", got)
	}

	got, err = ExpandHome("~/recordings")
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(got, "~") || !strings.HasSuffix(got, "recordings") {
		t.Errorf("Expected ~ to be expanded, got %s", got)
	}
}
