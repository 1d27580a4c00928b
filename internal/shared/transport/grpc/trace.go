package grpc

import (
	"context"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"UserCenter/modules/kit/tracex"
)

// UnaryClientTraceInterceptor 为客户端 unary 请求注入 trace/span。
func UnaryClientTraceInterceptor() gogrpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *gogrpc.ClientConn,
		invoker gogrpc.UnaryInvoker,
		opts ...gogrpc.CallOption,
	) error {
		return invoker(injectTraceToOutgoing(ctx), method, req, reply, cc, opts...)
	}
}

// UnaryServerTraceInterceptor 从 metadata 提取 trace/span，没有则新建 trace_id。
func UnaryServerTraceInterceptor() gogrpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *gogrpc.UnaryServerInfo,
		handler gogrpc.UnaryHandler,
	) (any, error) {
		return handler(extractTraceFromIncoming(ctx), req)
	}
}

// StreamServerTraceInterceptor 同上，作用于 stream（例如 Health.Watch）。
func StreamServerTraceInterceptor() gogrpc.StreamServerInterceptor {
	return func(
		srv any,
		ss gogrpc.ServerStream,
		info *gogrpc.StreamServerInfo,
		handler gogrpc.StreamHandler,
	) error {
		return handler(srv, &wrappedServerStream{
			ServerStream: ss,
			ctx:          extractTraceFromIncoming(ss.Context()),
		})
	}
}

type wrappedServerStream struct {
	gogrpc.ServerStream
	ctx context.Context
}

func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}

func injectTraceToOutgoing(ctx context.Context) context.Context {
	if traceID, ok := tracex.TraceIDFrom(ctx); ok {
		ctx = metadata.AppendToOutgoingContext(ctx, tracex.HeaderTraceID, traceID)
	}
	if spanID, ok := tracex.SpanIDFrom(ctx); ok {
		ctx = metadata.AppendToOutgoingContext(ctx, tracex.HeaderSpanID, spanID)
	}
	return ctx
}

func extractTraceFromIncoming(ctx context.Context) context.Context {
	var upstream string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(tracex.HeaderTraceID); len(values) > 0 {
			upstream = values[0]
		}
		if values := md.Get(tracex.HeaderSpanID); len(values) > 0 && values[0] != "" {
			ctx = tracex.WithSpanID(ctx, values[0])
		}
	}
	return tracex.EnsureTraceID(ctx, upstream)
}
