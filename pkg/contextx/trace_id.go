package contextx

import (
	"context"
	"fmt"

	"github.com/rs/xid"
)

type TraceID string

type contextKeyTraceID struct{}

func (t TraceID) String() string {
	return string(t)
}

// NewTraceID генерирует trace id для апдейта или запроса, у которого его ещё нет.
func NewTraceID() TraceID {
	return TraceID(xid.New().String())
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
