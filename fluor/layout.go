package fluor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// Directory names under the results root.
const (
	ResultsDirName = "Results"
	DataDirName    = "data_analysis"
	GraphsDirName  = "graphs"

	SummaryFileName = "summary.tsv"
)

// ExistingPolicy decides what happens when the results root already exists.
type ExistingPolicy string

const (
	// ExistingFail refuses to touch a results root that already exists.
	ExistingFail ExistingPolicy = "fail"

	// ExistingReuse creates whatever is missing and overwrites artifacts of
	// the same name.
	ExistingReuse ExistingPolicy = "reuse"
)

// ParseExistingPolicy accepts "fail" or "reuse".
func ParseExistingPolicy(s string) (ExistingPolicy, error) {
	switch p := ExistingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case ExistingFail, ExistingReuse:
		return p, nil
	}

	return "", fmt.Errorf("%w: unknown existing-results policy %q, use fail or reuse", ErrInvalidConfig, s)
}

// Layout holds the resolved output locations of a batch.
type Layout struct {
	Root   string
	Data   string
	Graphs string
}

// NewLayout resolves the output directories under root without touching the
// filesystem.
func NewLayout(root string) (Layout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, pfx.Err(err)
	}

	return Layout{
		Root:   abs,
		Data:   filepath.Join(abs, DataDirName),
		Graphs: filepath.Join(abs, GraphsDirName),
	}, nil
}

// PrepareLayout resolves and creates the output directories under root
// according to policy.
func PrepareLayout(root string, policy ExistingPolicy) (Layout, error) {
	l, err := NewLayout(root)
	if err != nil {
		return l, err
	}

	switch policy {
	case ExistingFail:
		if err := os.Mkdir(l.Root, 0755); errors.Is(err, fs.ErrExist) {
			return l, fmt.Errorf("%w: %s (move it aside or use the reuse policy)", ErrOutputConflict, l.Root)
		} else if err != nil {
			return l, pfx.Err(err)
		}
		for _, dir := range []string{l.Data, l.Graphs} {
			if err := os.Mkdir(dir, 0755); err != nil {
				return l, pfx.Err(err)
			}
		}
	case ExistingReuse:
		for _, dir := range []string{l.Data, l.Graphs} {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return l, pfx.Err(err)
			}
		}
	default:
		return l, fmt.Errorf("%w: unknown existing-results policy %q", ErrInvalidConfig, policy)
	}

	return l, nil
}

// TablePath is where the ΔF/F0 table for base is written.
func (l Layout) TablePath(base string) string {
	return filepath.Join(l.Data, base+"_DeltaF_F0_vs_time.csv")
}

// PlotPath is where the plot for base is written.
func (l Layout) PlotPath(base, ext string) string {
	return filepath.Join(l.Graphs, base+"_graph."+ext)
}

// SummaryPath is where the per-recording summary of the batch is written.
func (l Layout) SummaryPath() string {
	return filepath.Join(l.Root, SummaryFileName)
}
