// Package logger sets up structured logging with log/slog and carries a
// request id through context.Context.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// Init installs the default logger for service and returns it.
// format is "json" or "text".
func Init(service string, level slog.Level, format string) *slog.Logger {
	return InitTo(os.Stdout, service, level, format)
}

// InitTo is Init writing to w.
func InitTo(w io.Writer, service string, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if format == "text" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(h).With(slog.String("service", service))
	slog.SetDefault(logger)
	return logger
}

// WithRequestID stores a request id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// FromContext returns the default logger annotated with the request id of ctx.
func FromContext(ctx context.Context) *slog.Logger {
	if id := RequestID(ctx); id != "" {
		return slog.Default().With(slog.String("request_id", id))
	}
	return slog.Default()
}
