package utils

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Reporter writes per-path and per-source diagnostics to the error channel.
// Each diagnostic is one line. Output to a terminal is coloured red.
type Reporter struct {
	w     io.Writer
	red   *color.Color
	color bool
	count int
	mu    sync.Mutex
}

// NewReporter creates a reporter writing to w
func NewReporter(w io.Writer) *Reporter {
	red := color.New(color.FgRed)
	red.EnableColor()
	return &Reporter{
		w:     w,
		red:   red,
		color: IsTerminal(w) && !color.NoColor,
	}
}

// Report writes a single diagnostic line
func (r *Reporter) Report(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	if r.w == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if r.color {
		msg = r.red.Sprint(msg)
	}
	fmt.Fprintln(r.w, msg)
}

// ReportError writes err as a diagnostic line
func (r *Reporter) ReportError(err error) {
	r.Report("%s", err)
}

// Count returns the number of diagnostics reported so far
func (r *Reporter) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// IsTerminal reports whether w is a terminal file descriptor
func IsTerminal(w interface{}) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
