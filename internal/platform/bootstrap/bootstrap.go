// Package bootstrap builds the process-wide building blocks shared by cmd entrypoints.
package bootstrap

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/abgdnv/productcatalog/internal/platform/logger"
)

// NewLogger creates a JSON logger on stdout that tags every record with the service name.
// Source locations are added at debug level.
func NewLogger(service, level string) *slog.Logger {
	return newLogger(os.Stdout, service, level)
}

func newLogger(w io.Writer, service, level string) *slog.Logger {
	logLevel := toLevel(level)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	})
	return slog.New(logger.NewContextHandler(handler)).With("service", service)
}

// toLevel maps a case-insensitive level name to slog.Level, defaulting to info.
func toLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
