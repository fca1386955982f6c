// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New builds a logger for the given level and format. Format "auto" picks
// console output on a terminal and JSON otherwise; "console" and "json"
// force one or the other.
func New(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	console := format == "console"
	if format == "auto" || format == "" {
		console = isatty.IsTerminal(os.Stderr.Fd())
	}
	if console {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Nop returns a disabled logger for tests and library callers that pass no
// logger of their own.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
