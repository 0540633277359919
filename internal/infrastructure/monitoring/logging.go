package monitoring

import (
	"context"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// WithContext returns base annotated with the request id and trace id
// carried by ctx, when present.
func WithContext(ctx context.Context, base *zap.Logger) *zap.Logger {
	fields := make([]zap.Field, 0, 2)
	if id := chimw.GetReqID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if id := TraceIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("trace_id", id))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// LogHTTPRequest writes one access log line
func LogHTTPRequest(ctx context.Context, base *zap.Logger, method, path, clientIP string, status int, size int, duration time.Duration) {
	log := WithContext(ctx, base)
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.String("client_ip", clientIP),
		zap.Int("status_code", status),
		zap.Int("response_size", size),
		zap.Duration("duration", duration),
	}

	switch {
	case status >= 500:
		log.Error("HTTP request", fields...)
	case status >= 400:
		log.Warn("HTTP request", fields...)
	default:
		log.Info("HTTP request", fields...)
	}
}
