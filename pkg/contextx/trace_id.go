package contextx

import (
	"context"
	"fmt"

	"github.com/rs/xid"
)

type TraceID string

type contextKeyTraceID struct{}

func NewTraceID() TraceID {
	return TraceID(xid.New().String())
}

func (t TraceID) String() string {
	return string(t)
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	traceID, ok := ctx.Value(contextKeyTraceID{}).(TraceID)
	if !ok {
		return "", fmt.Errorf("trace id: %w", ErrNoValue)
	}

	return traceID, nil
}

// TraceIDFromContextOrNew returns the trace id stored in ctx, generating one
// when ctx carries none.
func TraceIDFromContextOrNew(ctx context.Context) TraceID {
	traceID, err := TraceIDFromContext(ctx)
	if err != nil {
		return NewTraceID()
	}

	return traceID
}
