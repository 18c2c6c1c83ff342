// compileinfoprint is imported by tools for the side effect of printing their
// build information to os.Stderr before any results are written.
package compileinfoprint

import "github.com/carbocation/deltaf/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
