package grpc

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"UserCenter/modules/kit/logx"
)

// Server 只承载标准 grpc.health.v1 服务，供编排系统探活。
type Server struct {
	srv     *gogrpc.Server
	health  *health.Server
	service string
	log     logx.Logger
}

func NewServer(service string, log logx.Logger) *Server {
	if log == nil {
		log = logx.Nop()
	}
	srv := gogrpc.NewServer(
		gogrpc.ChainUnaryInterceptor(UnaryServerTraceInterceptor()),
		gogrpc.ChainStreamInterceptor(StreamServerTraceInterceptor()),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(service, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Server{srv: srv, health: hs, service: service, log: log}
}

// SetServing 在依赖（数据库等）就绪后调用。
func (s *Server) SetServing(ok bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(s.service, status)
	s.health.SetServingStatus("", status)
}

// Serve 阻塞直到 lis 关闭或 Stop。
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("grpc health server started", zap.String("addr", lis.Addr().String()))
	return s.srv.Serve(lis)
}

// Stop 先标记 NOT_SERVING 再优雅退出，超时强停。
func (s *Server) Stop(timeout time.Duration) {
	s.health.Shutdown()
	done := make(chan struct{})
	go func() {
		s.srv.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		s.srv.Stop()
	}
}

// Dial 建立带 trace 注入的客户端连接。
func Dial(target string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	base := []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithChainUnaryInterceptor(UnaryClientTraceInterceptor()),
	}
	return gogrpc.NewClient(target, append(base, opts...)...)
}

// Probe 查询 service 的健康状态。
func Probe(ctx context.Context, conn *gogrpc.ClientConn, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}
