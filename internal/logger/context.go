package logger

import (
	"context"

	"github.com/sirupsen/logrus"
)

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying rid.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// FromContext tags base with the request id carried by ctx, if any.
func FromContext(ctx context.Context, base logrus.FieldLogger) logrus.FieldLogger {
	if rid := RequestID(ctx); rid != "" {
		return base.WithField("request_id", rid)
	}
	return base
}
