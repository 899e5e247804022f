// Package logger holds the process-wide structured logger. Format and level
// come from WINGCFG_LOG_FORMAT (text|json) and WINGCFG_LOG_LEVEL
// (debug|info|warn|error) so containers can switch to JSON without a code
// change.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// L is the package level logger used across the application.
var L = New(os.Getenv("WINGCFG_LOG_FORMAT"), os.Getenv("WINGCFG_LOG_LEVEL"))

// New builds a logger for the given format and level. Unknown values fall
// back to text at info.
func New(format, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// Set replaces the default logger with the provided one.
func Set(l *slog.Logger) {
	if l != nil {
		L = l
	}
}
