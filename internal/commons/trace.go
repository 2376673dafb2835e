package commons

import (
	"context"

	"github.com/google/uuid"
)

type traceIDKey struct{}

const TraceIDHeader = "X-Request-ID"

func NewTraceID() string {
	return uuid.New().String()
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceID returns the request trace id, or "" outside a traced request.
func TraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey{}).(string)
	return traceID
}
