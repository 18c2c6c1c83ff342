// deltaf computes ΔF/F0 versus time for every fluorescence recording in a
// folder and writes a table and a graph per recording under a Results folder.
//
// Each recording is a csv of per-frame mean intensities (e.g., ImageJ
// "Measure" output) with two rows per frame: the neuron ROI first, then a
// background ROI of the same size and shape.
//
// A recording that cannot be normalized (too few values, or a baseline of
// exactly zero) is reported and skipped, and the remaining recordings are
// still processed; the exit status is nonzero if any failed. Pass
// -continue_on_error=false to stop the whole batch at the first failure
// instead. An existing Results folder is reused and same-named outputs are
// overwritten; pass -on_existing=fail to refuse to run when it exists.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"cloud.google.com/go/storage"
	"github.com/carbocation/deltaf"
	_ "github.com/carbocation/deltaf/compileinfoprint"
	"github.com/carbocation/deltaf/fluor"
)

type options struct {
	Dir             string
	Results         string
	InitialFrames   int
	Hz              float64
	Glob            string
	Delimiter       string
	OnExisting      string
	ContinueOnError bool
	Workers         int
	Plotter         string
	Format          string
	Width           int
	Height          int
	LowPassHz       float64
	Summary         bool
	Debug           bool
}

func registerFlags(fs *flag.FlagSet, opts *options) {
	fs.StringVar(&opts.Dir, "dir", "", "Folder (or gs://bucket/prefix) with one csv of per-frame mean intensities per recording")
	fs.StringVar(&opts.Results, "results", "", "(Optional) Folder for results. Defaults to a Results folder inside -dir. Required if -dir is on Google Storage.")
	fs.IntVar(&opts.InitialFrames, "initial_frames", fluor.DefaultInitialFrames, "Number of initial frames averaged to compute the baseline F0")
	fs.Float64Var(&opts.Hz, "hz", fluor.DefaultSamplingHz, "Frame rate of the recordings, in frames per second")
	fs.StringVar(&opts.Glob, "glob", fluor.DefaultPattern, "Pattern selecting recordings in -dir. Compressed variants (.gz, .xz, .bz2, .zip) also match.")
	fs.StringVar(&opts.Delimiter, "delimiter", "auto", "Field delimiter of the input files: auto, tab, or a single character")
	fs.StringVar(&opts.OnExisting, "on_existing", string(fluor.ExistingReuse), "What to do if the results folder exists: reuse (overwrite same-named outputs) or fail")
	fs.BoolVar(&opts.ContinueOnError, "continue_on_error", true, "Keep processing other recordings when one fails, and report failures at the end. If false, the first failure stops the batch.")
	fs.IntVar(&opts.Workers, "workers", 1, "Number of recordings to process at once")
	fs.StringVar(&opts.Plotter, "plotter", "gochart", "Plotting backend: gochart or gonum")
	fs.StringVar(&opts.Format, "format", "png", "Graph image format: png or svg (gonum also supports pdf)")
	fs.IntVar(&opts.Width, "width", fluor.DefaultWidth, "Graph width in pixels")
	fs.IntVar(&opts.Height, "height", fluor.DefaultHeight, "Graph height in pixels")
	fs.Float64Var(&opts.LowPassHz, "lowpass_hz", 0, "(Optional) If > 0, low-pass filter the background-subtracted signal at this cutoff before computing F0")
	fs.BoolVar(&opts.Summary, "summary", true, "Write a summary.tsv with one row per recording into the results folder")
	fs.BoolVar(&opts.Debug, "debug", false, "Print a histogram of each recording's ΔF/F0 values")
}

func main() {
	start := time.Now()
	log.Println("deltaf start")
	defer func() {
		log.Printf("deltaf end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var configPath string
	opts := options{}

	flag.StringVar(&configPath, "config", "", "(Optional) TOML file whose keys (named like the flags) set defaults; explicit flags win")
	registerFlags(flag.CommandLine, &opts)
	flag.Parse()

	if configPath != "" {
		fc, err := loadFileConfig(configPath)
		if err != nil {
			log.Fatalln(err)
		}

		setOnCommandLine := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { setOnCommandLine[f.Name] = true })
		fc.apply(&opts, setOnCommandLine)
	}

	if opts.Dir == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(context.Background(), opts); err != nil {
		var batchErr *fluor.BatchError
		if errors.As(err, &batchErr) {
			for _, v := range batchErr.Failed {
				log.Println("FAILED", v)
			}
		}
		log.Fatalln(err)
	}
}

func run(ctx context.Context, opts options) error {
	// Initialize the Google Storage client only if we're pointing to Google
	// Storage paths.
	var client *storage.Client
	if strings.HasPrefix(opts.Dir, "gs://") {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			return err
		}
		defer client.Close()
	}

	runner, err := newRunner(opts, client)
	if err != nil {
		return err
	}

	_, err = runner.Run(ctx)

	return err
}

func newRunner(opts options, client *storage.Client) (*fluor.Runner, error) {
	delim, err := parseDelimiter(opts.Delimiter)
	if err != nil {
		return nil, err
	}

	policy, err := fluor.ParseExistingPolicy(opts.OnExisting)
	if err != nil {
		return nil, err
	}

	plotter, err := fluor.NewPlotter(opts.Plotter, opts.Format)
	if err != nil {
		return nil, err
	}

	cfg := fluor.DefaultConfig()
	cfg.InitialFrames = opts.InitialFrames
	cfg.SamplingHz = opts.Hz
	cfg.LowPassHz = opts.LowPassHz
	cfg.Delimiter = delim
	cfg.Pattern = opts.Glob
	cfg.ContinueOnError = opts.ContinueOnError
	cfg.Workers = opts.Workers
	cfg.Summary = opts.Summary
	cfg.Debug = opts.Debug
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src, err := deltaf.NewSource(opts.Dir, client)
	if err != nil {
		return nil, err
	}

	resultsRoot, err := resolveResultsRoot(opts.Results, src)
	if err != nil {
		return nil, err
	}

	layout, err := fluor.PrepareLayout(resultsRoot, policy)
	if err != nil {
		return nil, err
	}
	log.Println("Writing results to", layout.Root)

	return &fluor.Runner{
		Source: src,
		Emitter: fluor.Emitter{
			Layout:  layout,
			Plotter: plotter,
			Width:   opts.Width,
			Height:  opts.Height,
		},
		Config: cfg,
	}, nil
}

func resolveResultsRoot(results string, src deltaf.Source) (string, error) {
	if results != "" {
		return deltaf.ExpandHome(results)
	}

	if dir, ok := src.(deltaf.DirSource); ok {
		return filepath.Join(dir.Dir, fluor.ResultsDirName), nil
	}

	return "", fmt.Errorf("please provide -results when reading recordings from %s", src)
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: delimiter must be auto, tab, or a single character, got %q", fluor.ErrInvalidConfig, s)
	}

	r, _ := utf8.DecodeRuneInString(s)
	if r == '\r' || r == '\n' || r == '"' {
		return 0, fmt.Errorf("%w: %q cannot be used as a delimiter", fluor.ErrInvalidConfig, s)
	}

	return r, nil
}
