package logging

import (
	"io"
	"os"

	"cardroom/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var writer io.Writer = os.Stdout

// Init configures the global zerolog logger. With LOG_FILE set, output
// goes to a size-capped file instead of stdout.
func Init(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	writer = os.Stdout
	if cfg.File != "" {
		if w, err := newCappedFileWriter(cfg.File, cfg.MaxMB); err == nil {
			writer = w
		}
	}
	out := writer
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: writer}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// Writer exposes the sink chosen by Init so the HTTP request logger can
// share it.
func Writer() io.Writer {
	return writer
}
