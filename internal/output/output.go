// Package output writes the CLI's human-readable status lines.
package output

import (
	"fmt"
	"io"
)

// Logger prefixes each line with its level.
type Logger struct {
	w io.Writer
}

// New returns a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return &Logger{w: io.Discard}
}

// Info writes an informational line.
func (l *Logger) Info(format string, args ...any) { l.line("INFO", format, args...) }

// Warn writes a warning line.
func (l *Logger) Warn(format string, args ...any) { l.line("WARNING", format, args...) }

// Done writes a completion line.
func (l *Logger) Done(format string, args ...any) { l.line("DONE", format, args...) }

func (l *Logger) line(prefix, format string, args ...any) {
	fmt.Fprintf(l.w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}
