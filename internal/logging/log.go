// Package logging builds the process logger.
package logging

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/LeJamon/tokendex/internal/config"
	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the configured level and format.
// A nil w writes to stderr.
func New(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), err
		}
		level = parsed
	}

	if cfg.Format != config.LogFormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// RedirectStdLog sends the standard library logger through logger, so
// output from dependencies that use package log stays structured.
func RedirectStdLog(logger zerolog.Logger) {
	log.SetFlags(0)
	log.SetOutput(logger)
}
