package log

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Logger writes verbose diagnostic messages when Enabled is true.
// Output goes to the configured writer (typically stderr).
type Logger struct {
	Enabled bool
	W       io.Writer
	// Color enables the yellow warning prefix.
	Color bool
}

// New returns a Logger writing to w, colored when w is a terminal.
func New(w io.Writer, verbose bool) *Logger {
	return &Logger{Enabled: verbose, W: w, Color: IsTerminal(w)}
}

// Printf writes a formatted message to W when Enabled is true.
// It is a no-op when Enabled is false.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || !l.Enabled {
		return
	}
	_, _ = fmt.Fprintf(l.W, format+"\n", args...)
}

// Warnf writes a warning regardless of Enabled.
func (l *Logger) Warnf(format string, args ...any) {
	if l == nil || l.W == nil {
		return
	}
	prefix := color.New(color.FgYellow, color.Bold)
	if l.Color {
		prefix.EnableColor()
	} else {
		prefix.DisableColor()
	}
	_, _ = prefix.Fprint(l.W, "warning: ")
	_, _ = fmt.Fprintf(l.W, format+"\n", args...)
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
