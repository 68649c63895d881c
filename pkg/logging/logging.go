// Package logging configures structured logging for log/slog.
//
// Usage:
//
//	logging.Setup("info", "text")   // colored tint output on stderr
//	logging.Setup("debug", "json")  // JSON lines on stdout
//
// Levels: debug, info, warn, error (default: info).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default slog logger and returns it.
func Setup(level, format string) *slog.Logger {
	logger := New(os.Stderr, os.Stdout, ParseLevel(level), format)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger without installing it. Text output goes to textOut,
// JSON output to jsonOut.
func New(textOut, jsonOut io.Writer, level slog.Level, format string) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(jsonOut, &slog.HandlerOptions{
			Level: level,
		}))
	}
	return slog.New(tint.NewHandler(textOut, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level == slog.LevelDebug,
	}))
}

// ParseLevel maps a level name to a slog.Level, defaulting to INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
