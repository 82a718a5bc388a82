package observability

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const subjectKey contextKey = "subject"

var logger *slog.Logger

// NewLogger builds a structured logger writing to w
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(level),
		AddSource: level == "debug",
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// InitLogger initializes the global structured logger on stdout
func InitLogger(level, format string) {
	logger = NewLogger(level, format, os.Stdout)
	slog.SetDefault(logger)
}

// FromContext returns a logger carrying the request id set by chi's
// RequestID middleware and the session subject, when present.
func FromContext(ctx context.Context) *slog.Logger {
	base := logger
	if base == nil {
		base = slog.Default()
	}

	attrs := make([]any, 0, 2)
	if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
		attrs = append(attrs, slog.String("request_id", reqID))
	}
	if sub, ok := ctx.Value(subjectKey).(string); ok && sub != "" {
		attrs = append(attrs, slog.String("subject", sub))
	}

	if len(attrs) > 0 {
		return base.With(attrs...)
	}
	return base
}

// WithSubject tags ctx with the session subject for later log lines
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// SecurityEvent logs a rejected authentication or CSRF check. Token values
// are never logged.
func SecurityEvent(r *http.Request, msg, reason string) {
	FromContext(r.Context()).Warn(msg,
		slog.String("reason", reason),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("remote_addr", r.RemoteAddr),
	)
}

func parseLevel(level string) slog.Level {
	switch level {
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
