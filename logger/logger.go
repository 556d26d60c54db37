// Package logger builds the zerolog loggers of the cfs tool and carries them
// through contexts.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ContextKey is the type for context keys used by the logger
type ContextKey string

// LoggerKey is the context key for the logger instance
const LoggerKey ContextKey = "logger"

// DefaultLevel is the level used when none is configured.
const DefaultLevel = zerolog.InfoLevel

// New creates a console logger on stderr, leaving stdout to reports.
func New() zerolog.Logger {
	return NewConsole(os.Stderr)
}

// NewConsole creates a human readable logger writing to w.
func NewConsole(w io.Writer) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(output).Level(DefaultLevel).With().Timestamp().Logger()
}

// NewWithWriter creates a JSON logger writing to w.
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(DefaultLevel).With().Timestamp().Logger()
}

// WithLevel returns l filtered at the named level ("debug", "info", "warn"...).
// An empty name keeps the level of l.
func WithLevel(l zerolog.Logger, name string) (zerolog.Logger, error) {
	if name == "" {
		return l, nil
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return l, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return l.Level(level), nil
}

// WithContext adds the logger to the context
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from the context or returns a default logger
func FromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(LoggerKey).(zerolog.Logger); ok {
		return logger
	}
	return New()
}

// WithFields adds structured fields to a logger
func WithFields(logger zerolog.Logger, fields map[string]any) zerolog.Logger {
	ctx := logger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return ctx.Logger()
}
