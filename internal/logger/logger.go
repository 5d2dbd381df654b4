// Package logger builds the structured application logger.
package logger

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a zerolog.Logger writing to w at the given level. The console
// format is meant for local development; json for log pipelines.
func New(level, format string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	out := w
	switch format {
	case FormatConsole:
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", format)
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "productos").
		Logger(), nil
}

// Named returns a child logger tagged with a component name.
func Named(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
