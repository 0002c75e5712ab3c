/*
Package logging provides a minimal logging facade used across the
analysis core.

The core never writes to stdout directly. Every package that wants to
report progress or a recoverable problem does so through a *Logger,
which defaults to wrapping the standard library's log.Logger so callers
(the CLI, a test, a library embedder) can redirect or silence it.
*/
package logging

import (
	"io"
	"log"
	"os"
)

// Logger wraps a standard library logger with leveled convenience
// methods. The zero value is not usable; use New or Default.
type Logger struct {
	out *log.Logger
}

// Default returns a Logger that writes to os.Stderr, matching the
// convention of not polluting stdout (which is reserved for data).
func Default() *Logger {
	return New(os.Stderr)
}

// New returns a Logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{out: log.New(w, "", log.LstdFlags)}
}

// Discard returns a Logger that drops everything, useful in tests.
func Discard() *Logger {
	return New(io.Discard)
}

func (l *Logger) Infof(format string, args ...any) {
	l.out.Printf("INFO  "+format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.out.Printf("WARN  "+format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.out.Printf("DEBUG "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.out.Printf("ERROR "+format, args...)
}
