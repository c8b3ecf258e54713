package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a slog logger at the provided level. When app is non-empty,
// every record carries it as an attribute.
func New(level, app string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	logr := slog.New(handler)
	if app != "" {
		logr = logr.With(slog.String("app", app))
	}
	return logr
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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
