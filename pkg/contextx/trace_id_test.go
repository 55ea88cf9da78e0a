package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"bfmr_bot/pkg/contextx"
)

func TestTraceID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var testTraceIDEmpty contextx.TraceID

	traceID, err := contextx.TraceIDFromContext(ctx)
	rq.Equal(testTraceIDEmpty, traceID)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "trace id: no value in context")

	generated := contextx.NewTraceID()
	rq.Len(generated.String(), 20)
	rq.NotEqual(generated, contextx.NewTraceID())

	ctx = contextx.WithTraceID(ctx, generated)

	traceID, err = contextx.TraceIDFromContext(ctx)
	rq.Equal(generated, traceID)
	rq.NoError(err)
}
