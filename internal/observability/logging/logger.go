package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewJSONLogger builds the process-wide JSON logger for one service
// binary. Extra attrs land on every line after the service name, so
// per-binary context (queue subject, port) can be attached once.
func NewJSONLogger(service, level string, attrs ...slog.Attr) *slog.Logger {
	return NewJSONLoggerTo(os.Stdout, service, level, attrs...)
}

func NewJSONLoggerTo(w io.Writer, service, level string, attrs ...slog.Attr) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	logger := slog.New(handler).With("service", service)
	for _, attr := range attrs {
		logger = logger.With(attr)
	}
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
