package contextx

import (
	"context"
	"log/slog"
)

type contextKeyLogger struct{}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger{}, logger)
}

func LoggerFromContext(ctx context.Context) (*slog.Logger, error) {
	return valueFromContext[*slog.Logger](ctx, contextKeyLogger{}, "logger")
}

// LoggerFromContextOrDefault returns the context logger, falling back to
// slog.Default() so callers never have to nil-check.
func LoggerFromContextOrDefault(ctx context.Context) *slog.Logger {
	logger, err := LoggerFromContext(ctx)
	if err != nil || logger == nil {
		return slog.Default()
	}

	return logger
}
