package internal

import (
	"io"
	"log/slog"
)

// NewLogger creates a configured slog.Logger based on the environment.
// Dev: human-readable text at DEBUG level.
// Prod: JSON at INFO level, which is what CloudWatch Logs Insights expects.
func NewLogger(w io.Writer, isDev bool) *slog.Logger {
	if isDev {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With("service", "weekly-slack-reminder")
}
