// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a level name to a slog.Level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// New builds a logger writing to w, as JSON when asJSON is set
func New(w io.Writer, level slog.Level, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup installs the default logger. An unknown level falls back to info
// and is reported once the logger is in place.
func Setup(w io.Writer, levelName string, asJSON bool) *slog.Logger {
	level, err := ParseLevel(levelName)
	logger := New(w, level, asJSON)
	slog.SetDefault(logger)
	if err != nil {
		logger.Warn("Invalid log level, defaulting to info", "configured", levelName)
	}
	return logger
}
