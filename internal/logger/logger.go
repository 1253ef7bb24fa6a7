package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"warungchat/internal/config"
)

// Setup configures the global zerolog logger for one service.
// The TUI logs to a file so it does not draw over the screen.
func Setup(service string, cfg config.Log) (io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out, closer = f, f
	}

	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: cfg.File != ""}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Str("service", service).Logger()
	return closer, nil
}

// Discard silences logging, for front-ends without a log file.
func Discard() {
	log.Logger = zerolog.New(io.Discard)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
