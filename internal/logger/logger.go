// Package logger provides levelled, structured logging for crc-harvest.
//
// Output is JSON lines by default. When the output is a terminal (and
// LOG_FORMAT is not "json") a human-readable console format is used instead.
// Debug messages are only emitted when verbose mode is enabled via the
// --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	base              = build(os.Stderr, false)
)

// build creates the zerolog logger for the given writer and verbosity.
func build(w io.Writer, v bool) zerolog.Logger {
	if isTerminal(w) && os.Getenv("LOG_FORMAT") != "json" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	level := zerolog.InfoLevel
	if v {
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	base = build(output, verbose)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = build(output, verbose)
}

// Logger returns the current structured logger for callers that attach fields.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := base
	return &l
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	l := Logger()
	l.Debug().Msg(fmt.Sprintf(format, args...))
}

// Section logs a section marker if verbose mode is enabled.
func Section(name string) {
	l := Logger()
	l.Debug().Str("section", name).Msg("=== " + name + " ===")
}

// Info logs an informational message.
func Info(format string, args ...any) {
	l := Logger()
	l.Info().Msg(fmt.Sprintf(format, args...))
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	l := Logger()
	l.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs an error message.
func Error(err error, format string, args ...any) {
	l := Logger()
	l.Error().Err(err).Msg(fmt.Sprintf(format, args...))
}

// RecordFailure logs a record-level pipeline failure with the fields needed
// to triage it by hand.
func RecordFailure(stage, collection, recordID, source string, err error) {
	l := Logger()
	ev := l.Warn().
		Str("stage", stage).
		Str("collection", collection).
		Str("record_id", recordID)
	if source != "" {
		ev = ev.Str("source", source)
	}
	ev.Err(err).Msg("record " + stage + " failed")
}
