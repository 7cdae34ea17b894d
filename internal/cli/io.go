package cli

import (
	"fmt"
	"io"
)

// IO is where commands write. Output goes to out, errors to errOut.
// Warnings (such as an unreadable history file) are shown before the first
// line of output and again by [IO.Finish], so a long "ls" cannot bury them.
type IO struct {
	out    io.Writer
	errOut io.Writer

	warnings []string
	shown    bool
}

// NewIO returns an IO writing to out and errOut.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Warn queues a warning made of what went wrong and what to do about it.
func (o *IO) Warn(issue string, action string) {
	o.warnings = append(o.warnings, issue+": "+action)
}

// Println writes a line to out.
func (o *IO) Println(a ...any) {
	o.showWarnings()
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to out.
func (o *IO) Printf(format string, a ...any) {
	o.showWarnings()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes a line to errOut.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Finish repeats queued warnings at the end of the session. The exit code
// is 1 when there were any.
func (o *IO) Finish() int {
	if len(o.warnings) == 0 {
		return 0
	}

	if !o.shown {
		o.showWarnings()

		return 1
	}

	o.printWarnings()

	return 1
}

func (o *IO) showWarnings() {
	if o.shown || len(o.warnings) == 0 {
		return
	}

	o.shown = true
	o.printWarnings()
}

func (o *IO) printWarnings() {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}
}
