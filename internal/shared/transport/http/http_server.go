package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"UserCenter/internal/shared/transport"
	"UserCenter/internal/shared/transport/http/middleware"
	"UserCenter/modules/kit/logx"
)

// Registrar 由业务模块实现，把自己的路由挂到父分组上。
type Registrar interface {
	HttpRegister(g *gin.RouterGroup)
}

type Options struct {
	AllowOrigins []string
	// Gatherer 非空时暴露 /metrics，Registerer 非空时记录请求指标。
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

type Server struct {
	engine *gin.Engine
	srv    *nethttp.Server
}

func NewHttpServer(addr string, engine *gin.Engine, logger logx.Logger, opts Options) *Server {
	if engine == nil {
		engine = gin.New()
		engine.Use(gin.Recovery())
	}
	if logger == nil {
		logger = logx.Nop()
	}
	engine.Use(middleware.AccessLog(logger))
	engine.Use(middleware.Cors(opts.AllowOrigins))
	if opts.Registerer != nil {
		engine.Use(middleware.NewHTTPMetrics(opts.Registerer).Handler())
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	engine.NoRoute(NotFound)

	return &Server{
		engine: engine,
		srv: &nethttp.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// NotFound 是未匹配路由的统一响应。
func NotFound(c *gin.Context) {
	transport.SetErrorReason(c.Request.Context(), "ROUTE_NOT_FOUND")
	c.AbortWithStatusJSON(nethttp.StatusNotFound, transport.Fail(transport.RouteNotFound, "接口不存在"))
}

// Register 依次挂载模块路由到 prefix 分组下。
func (s *Server) Register(prefix string, modules ...Registrar) {
	g := s.engine.Group(prefix)
	for _, m := range modules {
		m.HttpRegister(g)
	}
}

// Start 启动 HTTP 服务（阻塞），Shutdown 后返回 net/http.ErrServerClosed。
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Handler() nethttp.Handler {
	return s.engine
}
