package main

import (
	"os"

	"github.com/carbocation/pfx"
	"github.com/pelletier/go-toml/v2"
)

// fileConfig mirrors the command line flags. Values set here act as defaults
// that explicit flags override. Unset keys leave the flag default alone.
type fileConfig struct {
	Dir             *string  `toml:"dir"`
	Results         *string  `toml:"results"`
	InitialFrames   *int     `toml:"initial_frames"`
	Hz              *float64 `toml:"hz"`
	Glob            *string  `toml:"glob"`
	Delimiter       *string  `toml:"delimiter"`
	OnExisting      *string  `toml:"on_existing"`
	ContinueOnError *bool    `toml:"continue_on_error"`
	Workers         *int     `toml:"workers"`
	Plotter         *string  `toml:"plotter"`
	Format          *string  `toml:"format"`
	Width           *int     `toml:"width"`
	Height          *int     `toml:"height"`
	LowPassHz       *float64 `toml:"lowpass_hz"`
	Summary         *bool    `toml:"summary"`
	Debug           *bool    `toml:"debug"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var out fileConfig

	bts, err := os.ReadFile(path)
	if err != nil {
		return out, pfx.Err(err)
	}

	if err := toml.Unmarshal(bts, &out); err != nil {
		return out, pfx.Err(err)
	}

	return out, nil
}

// apply copies every key present in the file onto opts, except those named in
// setOnCommandLine.
func (fc fileConfig) apply(opts *options, setOnCommandLine map[string]bool) {
	override(setOnCommandLine, "dir", &opts.Dir, fc.Dir)
	override(setOnCommandLine, "results", &opts.Results, fc.Results)
	override(setOnCommandLine, "initial_frames", &opts.InitialFrames, fc.InitialFrames)
	override(setOnCommandLine, "hz", &opts.Hz, fc.Hz)
	override(setOnCommandLine, "glob", &opts.Glob, fc.Glob)
	override(setOnCommandLine, "delimiter", &opts.Delimiter, fc.Delimiter)
	override(setOnCommandLine, "on_existing", &opts.OnExisting, fc.OnExisting)
	override(setOnCommandLine, "continue_on_error", &opts.ContinueOnError, fc.ContinueOnError)
	override(setOnCommandLine, "workers", &opts.Workers, fc.Workers)
	override(setOnCommandLine, "plotter", &opts.Plotter, fc.Plotter)
	override(setOnCommandLine, "format", &opts.Format, fc.Format)
	override(setOnCommandLine, "width", &opts.Width, fc.Width)
	override(setOnCommandLine, "height", &opts.Height, fc.Height)
	override(setOnCommandLine, "lowpass_hz", &opts.LowPassHz, fc.LowPassHz)
	override(setOnCommandLine, "summary", &opts.Summary, fc.Summary)
	override(setOnCommandLine, "debug", &opts.Debug, fc.Debug)
}

func override[T any](setOnCommandLine map[string]bool, name string, dst *T, src *T) {
	if src != nil && !setOnCommandLine[name] {
		*dst = *src
	}
}
