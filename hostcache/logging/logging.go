// Package logging sets up the demo host's structured logger, grounded on
// the teacher's pkg/utils/logger package: zerolog with an optional
// lumberjack-rotated file sink.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
}

// Config controls where and how the host logs.
type Config struct {
	// Level is a zerolog level name ("debug", "info", "warn", "error").
	// Defaults to "info".
	Level string

	// Format is "json" for structured output, anything else for a
	// human-readable console writer.
	Format string

	// FilePath, if set, directs logs to a lumberjack-rotated file instead
	// of stderr.
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init configures the global zerolog logger from cfg.
func Init(cfg Config) {
	w := writer(cfg)

	level := parseLevel(cfg.Level)
	ctx := zerolog.New(w).With().Timestamp()
	if level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}

	log.Logger = ctx.Logger().Level(level)
	zerolog.DefaultContextLogger = &log.Logger
	zerolog.SetGlobalLevel(level)
}

func writer(cfg Config) io.Writer {
	var w io.Writer = os.Stderr

	if cfg.FilePath != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
	}

	if cfg.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: cfg.FilePath != ""}
	}

	return w
}

func parseLevel(name string) zerolog.Level {
	if name == "" {
		name = "info"
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		log.Error().Err(err).Str("level", name).Msg("hostcache: invalid log level, defaulting to error")
		return zerolog.ErrorLevel
	}
	return level
}
