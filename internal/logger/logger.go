// Package logger configures zerolog for mbm.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nikbrunner/mbm/internal/config"
)

// Setup builds the application logger and installs it as the global
// zerolog logger. The returned close func releases the log file, if any.
// When the file cannot be opened the logger falls back to stderr.
func Setup(cfg config.LoggingConfig) (zerolog.Logger, func() error) {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = os.Stderr
	closeFn := func() error { return nil }
	if cfg.File != "" {
		file, err := openLogFile(cfg.File)
		if err != nil {
			log.Warn().Err(err).Str("file", cfg.File).Msg("cannot open log file, using stderr")
		} else {
			output = file
			closeFn = file.Close
		}
	}

	l := New(output, cfg.Format)
	log.Logger = l
	return l, closeFn
}

// New creates a logger writing to w in the given format (json or text).
func New(w io.Writer, format string) zerolog.Logger {
	if format == "text" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}

// parseLevel maps a level name to a zerolog level. Unknown names are info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
