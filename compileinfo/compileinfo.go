// Package compileinfo reports which build of a tool produced a set of
// results, so that ΔF/F0 tables can be traced back to the code that made them.
package compileinfo

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

type CompileInfo struct {
	Package    string
	Module     string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.Package == "" {
		return "Build information is unavailable for this binary."
	}

	version := ""
	if c.Version != "" && c.Version != "(devel)" {
		version = " " + c.Version
	}

	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	return fmt.Sprintf("This %s%s binary was built with %s at commit %v at time %v.%s", c.Package, version, c.GoVersion, c.Commit, c.CommitTime, mod)
}

// Get reads the build information embedded by the Go toolchain.
func Get() CompileInfo {
	z, ok := debug.ReadBuildInfo()
	if !ok {
		return CompileInfo{}
	}

	return fromBuildInfo(z)
}

func fromBuildInfo(z *debug.BuildInfo) CompileInfo {
	out := CompileInfo{
		GoVersion: z.GoVersion,
		Package:   z.Path,
		Module:    z.Main.Path,
		Version:   z.Main.Version,
	}

	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

// Fprint writes the build information of the running binary to w.
func Fprint(w io.Writer) {
	fmt.Fprintf(w, "%s\n", Get())
}

func PrintToStdErr() {
	Fprint(os.Stderr)
}
