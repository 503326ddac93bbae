// Package logging configures the process logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the given level ("debug", "info", ...).
// Unknown levels fall back to info. When pretty is set the output is human readable.
func New(w io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// ForMode picks the output format from the gin mode: JSON lines in release,
// console output otherwise.
func ForMode(w io.Writer, level, mode string) zerolog.Logger {
	return New(w, level, mode != "release")
}

// Default is the logger used by the binaries, on stderr.
func Default(level, mode string) zerolog.Logger {
	return ForMode(os.Stderr, level, mode)
}
