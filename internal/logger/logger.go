// Package logger builds the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/example/kanjibot/internal/config"
)

// New creates a *slog.Logger for cfg writing to stderr and installs it as the default logger.
func New(cfg config.LogConfig) *slog.Logger {
	log := NewWithWriter(cfg, os.Stderr)
	slog.SetDefault(log)
	return log
}

// NewWithWriter creates a *slog.Logger for cfg writing to w.
// Format "json" produces JSON records, anything else human-readable text.
func NewWithWriter(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps debug, warn and error to their slog levels; anything else is info.
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
