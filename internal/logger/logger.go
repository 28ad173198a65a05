package logger

import (
	"io"
	"log/slog"

	"emoji-arpg/internal/config"
)

// Setup configures the global slog logger based on environment and writes
// to out. The terminal sandbox passes a file or io.Discard because the screen
// owns stdout.
func Setup(cfg *config.Config, out io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithSession tags every record with the play session it belongs to.
func WithSession(logger *slog.Logger, sessionID string) *slog.Logger {
	return logger.With("session", sessionID)
}
