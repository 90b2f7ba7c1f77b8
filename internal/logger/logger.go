// Package logger builds the zerolog loggers shared by the commands and the
// recognition pipeline.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Config selects the log level and output format.
type Config struct {
	Level  string `toml:"level"`  // zerolog level name, e.g. "debug", "info"
	Format string `toml:"format"` // "console" or "json"
}

// DefaultConfig logs info and above to the console.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "console"}
}

// New returns a timestamped logger writing to w.
func New(w io.Writer, c Config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if c.Level != "" {
		parsed, err := zerolog.ParseLevel(c.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", c.Level, err)
		}
		level = parsed
	}

	switch c.Format {
	case "", "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", c.Format)
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

// NewConsole returns a console logger on stderr, falling back to info level
// when the configuration is invalid.
func NewConsole(c Config) zerolog.Logger {
	log, err := New(os.Stderr, c)
	if err != nil {
		log, _ = New(os.Stderr, DefaultConfig())
		log.Warn().Err(err).Msg("using default logger")
	}
	return log
}

// Component returns a child logger tagged with a component name.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
