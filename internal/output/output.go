// Package output provides formatted console output for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Color names a console color used by Colored.
type Color string

// Colors understood by Colored. Normal prints without escape codes.
const (
	Normal Color = "NORMAL"
	Red    Color = "RED"
	Green  Color = "GREEN"
	Yellow Color = "YELLOW"
	Cyan   Color = "CYAN"
)

// ANSI color codes.
const (
	reset  = "\033[0m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

var colorCodes = map[Color]string{
	Red:    red,
	Green:  green,
	Yellow: yellow,
	Cyan:   cyan,
}

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
	quiet bool
}

// New creates a new Writer with default settings.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal(os.Stdout),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Stdout returns the writer used for standard output.
func (w *Writer) Stdout() io.Writer { return w.out }

// Stderr returns the writer used for diagnostics.
func (w *Writer) Stderr() io.Writer { return w.err }

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Error writes to stderr.
func (w *Writer) Error(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format, args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Colored prints a full line to stdout in the given color.
// Multi-line messages are colored as a whole.
func (w *Writer) Colored(c Color, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	code, ok := colorCodes[c]
	if !w.color || !ok {
		w.Println("%s", msg)
		return
	}
	w.Println("%s%s%s", code, msg, reset)
}

// Warning prints a warning message to stderr.
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%swarning:%s %s", yellow, reset, msg)
	} else {
		w.Errorln("warning: %s", msg)
	}
}

// ErrorPrefix prints an error message with the unitrun prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%sunitrun:%s %s", red, reset, msg)
	} else {
		w.Errorln("unitrun: %s", msg)
	}
}

// Progress prints a "[count/total] label" progress line to stderr.
// Terminals get a carriage-return line that the next call overwrites.
func (w *Writer) Progress(count, total int, label string) {
	if w.quiet {
		return
	}
	width := len(fmt.Sprint(total))
	line := fmt.Sprintf("[%*d/%d] %s", width, count, total, label)
	if w.color {
		w.Error("\r\033[K%s%s%s", green, line, reset)
		return
	}
	w.Errorln("%s", line)
}

// EndProgress terminates a carriage-return progress line.
func (w *Writer) EndProgress() {
	if w.color && !w.quiet {
		w.Error("\n")
	}
}

// Hint prints a dimmed hint message to stderr.
func (w *Writer) Hint(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%s%s%s", dim, msg, reset)
	} else {
		w.Errorln("%s", msg)
	}
}

// Table prints a simple table.
func (w *Writer) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var headerParts []string
	for i, h := range headers {
		headerParts = append(headerParts, fmt.Sprintf("%-*s", widths[i], h))
	}
	w.Println("%s", strings.TrimRight(strings.Join(headerParts, "  "), " "))

	var sepParts []string
	for _, width := range widths {
		sepParts = append(sepParts, strings.Repeat("-", width))
	}
	w.Println("%s", strings.Join(sepParts, "  "))

	for _, row := range rows {
		var rowParts []string
		for i, cell := range row {
			if i < len(widths) {
				rowParts = append(rowParts, fmt.Sprintf("%-*s", widths[i], cell))
			}
		}
		w.Println("%s", strings.TrimRight(strings.Join(rowParts, "  "), " "))
	}
}

// isTerminal returns true if f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
