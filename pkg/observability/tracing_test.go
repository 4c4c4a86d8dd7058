package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceFunction(t *testing.T) {
	tracer := NewTracer("tastebud")

	t.Run("runs the wrapped function outside a sampled request", func(t *testing.T) {
		ran := false
		err := tracer.TraceFunction(context.Background(), "songlog.create", func(ctx context.Context) error {
			ran = true
			return nil
		})

		require.NoError(t, err)
		assert.True(t, ran)
	})

	t.Run("propagates the wrapped function's error", func(t *testing.T) {
		wantErr := errors.New("store unavailable")

		err := tracer.TraceFunction(context.Background(), "comparison.apply", func(ctx context.Context) error {
			return wantErr
		})

		assert.ErrorIs(t, err, wantErr)
	})
}

func TestSegmentHelpersNoopWithoutSegment(t *testing.T) {
	tracer := NewTracer("tastebud")
	ctx := context.Background()

	// None of these may panic when no segment is active
	tracer.AddMetadata(ctx, "userID", "user-1")
	tracer.AddAnnotation(ctx, "operation", "songlog.query")
	tracer.RecordError(ctx, errors.New("boom"))
}
