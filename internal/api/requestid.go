package api

import (
	"context"

	"github.com/google/uuid"
)

// RequestIDHeader carries the client-generated id of a request.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID returns a context carrying a fresh request id along with the
// id itself. An id already present in ctx is reused.
func WithRequestID(ctx context.Context) (context.Context, string) {
	if rid := RequestIDFromContext(ctx); rid != "" {
		return ctx, rid
	}
	rid := uuid.NewString()
	return context.WithValue(ctx, requestIDKey{}, rid), rid
}

// RequestIDFromContext returns the request id stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	rid, _ := ctx.Value(requestIDKey{}).(string)
	return rid
}
