// Package logging builds the structured logger used for diagnostics.
// User-facing output goes to stdout; log records go to stderr and are
// quiet unless the level is lowered.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New creates a text logger writing to w at the given level, tagged with runID.
func New(w io.Writer, level slog.Level, runID string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	if runID != "" {
		logger = logger.With("run_id", runID)
	}
	return logger
}
