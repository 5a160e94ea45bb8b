package output

import (
	"os"

	"github.com/mattn/go-isatty"
)

// checkIsTerminal reports whether the file is attached to a terminal.
func checkIsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ColorsEnabled decides whether colored output should be produced:
// never when the caller asked for no color, and never when stdout is not
// a terminal (pipes, redirects, CI logs).
func ColorsEnabled(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	return checkIsTerminal(os.Stdout)
}
