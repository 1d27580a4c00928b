package tracex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceID_RoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "t-1")
	got, ok := TraceIDFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "t-1", got)

	_, ok = SpanIDFrom(ctx)
	assert.False(t, ok)
}

func TestNewTraceID_32位hex(t *testing.T) {
	id := NewTraceID()
	assert.Len(t, id, 32)
	assert.NotEqual(t, id, NewTraceID())
}

func TestEnsureTraceID_优先使用上游值(t *testing.T) {
	ctx := EnsureTraceID(context.Background(), "upstream")
	got, _ := TraceIDFrom(ctx)
	assert.Equal(t, "upstream", got)

	ctx = EnsureTraceID(ctx, "")
	got, _ = TraceIDFrom(ctx)
	assert.Equal(t, "upstream", got, "已有 trace_id 时不覆盖")

	fresh, ok := TraceIDFrom(EnsureTraceID(context.Background(), ""))
	assert.True(t, ok)
	assert.Len(t, fresh, 32)
}
