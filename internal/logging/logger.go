// Package logging configures the process-wide zerolog logger.
//
// While the terminal overlay owns the screen, writing to stderr would
// corrupt it, so the logger targets a file whenever one is configured
// and falls back to stderr otherwise.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string

	// File receives log output when set. Required while the overlay
	// is on screen; stderr is only safe for one-shot CLI commands.
	File string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// ParseLevel maps a config string onto a zerolog level, defaulting to
// info for anything unrecognized.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New creates a logger with the given configuration. The returned
// closer is non-nil when a log file was opened.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	var sink io.Writer = os.Stderr
	var closer io.Closer

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		sink = f
		closer = f
	}

	output := sink
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        sink,
			TimeFormat: cfg.TimeFormat,
			NoColor:    closer != nil,
		}
	}

	log := zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
	return log, closer, nil
}
