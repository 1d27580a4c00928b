package router

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"UserCenter/modules/kit/logx"
)

// ErrRouteNotFound 表示路由表里没有匹配项，由上层决定如何渲染 404。
var ErrRouteNotFound = errors.New("route not found")

// Router 持有有序路由表。表在启动时建好，挂载后只读。
type Router struct {
	routes   []Route
	base     string
	notFound gin.HandlerFunc
	log      logx.Logger
}

type Option func(*Router)

// WithNotFound 设置挂载后未命中时的响应，默认只写 404 状态码。
func WithNotFound(h gin.HandlerFunc) Option {
	return func(r *Router) {
		if h != nil {
			r.notFound = h
		}
	}
}

func WithLogger(l logx.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.log = l
		}
	}
}

func New(opts ...Option) *Router {
	r := &Router{
		notFound: func(c *gin.Context) { c.AbortWithStatus(http.StatusNotFound) },
		log:      logx.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register 追加一条路由，不做校验。
func (r *Router) Register(method, path string, handler gin.HandlerFunc) {
	r.Add(Route{Method: method, Path: path, Handler: handler})
}

func (r *Router) Add(route Route) {
	r.routes = append(r.routes, route)
}

// Routes 返回路由表副本。
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Handle 把请求交给第一条匹配的路由；没有匹配时返回 ErrRouteNotFound，不写响应。
func (r *Router) Handle(c *gin.Context) error {
	rel, ok := r.relativePath(c.Request.URL.Path)
	if !ok {
		return ErrRouteNotFound
	}
	route, ok := Match(r.routes, c.Request.Method, rel)
	if !ok {
		return ErrRouteNotFound
	}
	params, _ := matchPath(route.Path, rel)
	for _, p := range params {
		if c.Param(p.key) == "" {
			c.AddParam(p.key, p.value)
		}
	}
	route.Handler(c)
	return nil
}

// Mount 把路由表挂到 g 下。同一 (method, path) 只挂第一条，
// 每条路由同时挂上带与不带末尾斜杠的两种写法。
func (r *Router) Mount(g *gin.RouterGroup) {
	r.base = strings.TrimSuffix(g.BasePath(), "/")

	mounted := make(map[string]bool, len(r.routes)*2)
	for _, route := range r.routes {
		key := route.Method + " " + normalize(route.Path)
		if mounted[key] {
			r.log.Warn("duplicate route ignored",
				zap.String("method", route.Method),
				zap.String("path", route.Path),
				zap.String("name", route.Name),
			)
			continue
		}
		mounted[key] = true

		abs := make(map[string]bool, 2)
		for _, rel := range slashVariants(route.Path) {
			full := joinPaths(g.BasePath(), rel)
			if abs[full] {
				continue
			}
			abs[full] = true
			g.Handle(route.Method, rel, r.dispatch)
		}
	}
}

func (r *Router) dispatch(c *gin.Context) {
	if err := r.Handle(c); errors.Is(err, ErrRouteNotFound) {
		r.notFound(c)
	}
}

func (r *Router) relativePath(p string) (string, bool) {
	if r.base == "" {
		return p, true
	}
	if p != r.base && !strings.HasPrefix(p, r.base+"/") {
		return "", false
	}
	rel := strings.TrimPrefix(p, r.base)
	if rel == "" {
		rel = "/"
	}
	return rel, true
}

// normalize 去掉末尾斜杠，根路径保持 "/"。
func normalize(p string) string {
	return "/" + strings.Join(splitPath(p), "/")
}

// slashVariants "/" -> ["/", ""]，"/a" -> ["/a", "/a/"]。
func slashVariants(p string) []string {
	n := normalize(p)
	if n == "/" {
		return []string{"/", ""}
	}
	return []string{n, n + "/"}
}

// joinPaths 与 gin 拼接组路径的规则一致。
func joinPaths(base, rel string) string {
	if rel == "" {
		return base
	}
	final := path.Join(base, rel)
	if strings.HasSuffix(rel, "/") && !strings.HasSuffix(final, "/") {
		return final + "/"
	}
	return final
}
