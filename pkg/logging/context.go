package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// Ctx returns a logger from the context or the default logger.
// This is a shorter alias for FromContext.
func Ctx(ctx context.Context) *zerolog.Logger {
	return FromContext(ctx)
}

// WithBlueprint adds blueprint context to the logger in the context.
func WithBlueprint(ctx context.Context, blueprint string) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().Str("blueprint", blueprint).Logger()
	return WithLogger(ctx, &newLogger)
}

// WithPassToken adds the reconciliation pass token to the logger in the
// context, for tracing superseded fetches.
func WithPassToken(ctx context.Context, token string) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().Str("pass_token", token).Logger()
	return WithLogger(ctx, &newLogger)
}
