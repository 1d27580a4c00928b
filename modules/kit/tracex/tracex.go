package tracex

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

const (
	// HeaderTraceID 是 HTTP/gRPC 透传 trace_id 使用的头。
	HeaderTraceID = "x-trace-id"
	// HeaderSpanID 是 HTTP/gRPC 透传 span_id 使用的头。
	HeaderSpanID = "x-span-id"
)

type traceIDKey struct{}
type spanIDKey struct{}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

func TraceIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(traceIDKey{}).(string)
	return s, ok && s != ""
}

func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, spanIDKey{}, spanID)
}

func SpanIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(spanIDKey{}).(string)
	return s, ok && s != ""
}

// NewTraceID 生成 32 位 hex 的 trace_id。
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// EnsureTraceID 复用上游传入的 trace_id，没有则新建。
func EnsureTraceID(ctx context.Context, upstream string) context.Context {
	if upstream != "" {
		return WithTraceID(ctx, upstream)
	}
	if _, ok := TraceIDFrom(ctx); ok {
		return ctx
	}
	return WithTraceID(ctx, NewTraceID())
}
