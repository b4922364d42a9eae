package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/copyninja277/Sma-app/pkg/sma/config"
)

// New creates a zerolog logger from the log section of the configuration.
// Unknown levels fall back to info.
func New(cfg config.Log, service string) zerolog.Logger {
	return NewWithWriter(cfg, service, os.Stderr)
}

// NewWithWriter is New with an explicit output.
func NewWithWriter(cfg config.Log, service string, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	w := out
	if cfg.Format != "json" {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("service", service).Logger()
}
