// Package logging configures structured logging with tint.
//
// Usage:
//
//	logger := logging.Setup()                          // level and format from env
//	logger := logging.SetupWithLevel(slog.LevelDebug)  // explicit level override
//
// Environment variables:
//
//	LOG_LEVEL:  debug, info, warn, error (default: info)
//	LOG_FORMAT: text (colored, default) or json
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Setup installs the default logger at the level from LOG_LEVEL and in the
// format from LOG_FORMAT.
func Setup() *slog.Logger {
	return SetupWithLevel(LevelFromEnv())
}

// SetupWithLevel installs the default logger at the given level and
// returns it.
func SetupWithLevel(level slog.Level) *slog.Logger {
	logger := New(os.Stderr, level, os.Getenv("LOG_FORMAT"))
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing to w. format "json" selects slog's JSON
// handler for log shippers; anything else gets colored tint output.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
		NoColor:    !isTerminal(w),
	}))
}

// LevelFromEnv parses LOG_LEVEL, defaulting to info.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv("LOG_LEVEL"))
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
