package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"UserCenter/modules/kit/logx"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recorder 记录被调用的 handler 名。
type recorder struct {
	calls []string
}

func (r *recorder) RegisterUser(c *gin.Context) {
	r.calls = append(r.calls, "registerUser")
	c.String(http.StatusOK, "register")
}

func (r *recorder) LoggingUser(c *gin.Context) {
	r.calls = append(r.calls, "loggingUser")
	c.String(http.StatusOK, "login")
}

func TestMatch_用户路由表(t *testing.T) {
	routes := NewUserRouter(&recorder{}).Routes()

	cases := []struct {
		method, path string
		want         string
	}{
		{http.MethodPost, "/", "registerUser"},
		{http.MethodPost, "/logging", "loggingUser"},
		{http.MethodPost, "/logging/", "loggingUser"},
		{http.MethodGet, "/", ""},
		{http.MethodGet, "/logging", ""},
		{http.MethodPost, "/unknown", ""},
		{http.MethodPost, "/logging/extra", ""},
		{http.MethodPut, "/", ""},
	}
	for _, tc := range cases {
		got, ok := Match(routes, tc.method, tc.path)
		if tc.want == "" {
			assert.False(t, ok, "%s %s", tc.method, tc.path)
			continue
		}
		require.True(t, ok, "%s %s", tc.method, tc.path)
		assert.Equal(t, tc.want, got.Name)
	}
}

func TestMatch_按注册顺序先到先得(t *testing.T) {
	routes := []Route{
		{Method: http.MethodPost, Path: "/users/:id", Name: "byID"},
		{Method: http.MethodPost, Path: "/users/me", Name: "me"},
		{Method: http.MethodPost, Path: "/users/:id", Name: "shadowed"},
	}
	got, ok := Match(routes, http.MethodPost, "/users/me")
	require.True(t, ok)
	assert.Equal(t, "byID", got.Name)
}

func TestMatchPath_参数段(t *testing.T) {
	params, ok := matchPath("/users/:id/logs", "/users/42/logs")
	require.True(t, ok)
	assert.Equal(t, []param{{key: "id", value: "42"}}, params)

	_, ok = matchPath("/users/:id", "/users//")
	assert.False(t, ok)
	_, ok = matchPath("/users/:id", "/users")
	assert.False(t, ok)
}

func TestNewUserRouter_重复初始化得到相同路由表(t *testing.T) {
	h := &recorder{}
	a, b := NewUserRouter(h).Routes(), NewUserRouter(h).Routes()

	require.Len(t, a, 2)
	require.Len(t, b, 2)
	for i := range a {
		assert.Equal(t, a[i].Method, b[i].Method)
		assert.Equal(t, a[i].Path, b[i].Path)
		assert.Equal(t, a[i].Name, b[i].Name)
	}
	assert.Equal(t, "/", a[0].Path)
	assert.Equal(t, "/logging", a[1].Path)
}

func TestRoutes_返回副本(t *testing.T) {
	r := NewUserRouter(&recorder{})
	routes := r.Routes()
	routes[0].Path = "/hijacked"

	assert.Equal(t, "/", r.Routes()[0].Path)
}

func TestHandle_只调用匹配的handler(t *testing.T) {
	h := &recorder{}
	r := NewUserRouter(h)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/logging", nil)
	require.NoError(t, r.Handle(c))
	assert.Equal(t, []string{"loggingUser"}, h.calls)
	assert.Equal(t, "login", w.Body.String())
}

func TestHandle_未命中返回ErrRouteNotFound且不写响应(t *testing.T) {
	h := &recorder{}
	r := NewUserRouter(h)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/", nil),
		httptest.NewRequest(http.MethodPost, "/unknown", nil),
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = req
		require.ErrorIs(t, r.Handle(c), ErrRouteNotFound)
		assert.False(t, c.Writer.Written())
	}
	assert.Empty(t, h.calls)
}

func TestHandle_参数写入gin上下文(t *testing.T) {
	r := New()
	var got string
	r.Register(http.MethodGet, "/users/:id", func(c *gin.Context) { got = c.Param("id") })

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/users/42", nil)
	require.NoError(t, r.Handle(c))
	assert.Equal(t, "42", got)
}

func TestMount_挂载到父前缀下(t *testing.T) {
	h := &recorder{}
	e := gin.New()
	NewUserRouter(h).Mount(e.Group("/api/user"))

	cases := []struct {
		method, path string
		status       int
		body         string
	}{
		{http.MethodPost, "/api/user", http.StatusOK, "register"},
		{http.MethodPost, "/api/user/", http.StatusOK, "register"},
		{http.MethodPost, "/api/user/logging", http.StatusOK, "login"},
		{http.MethodPost, "/api/user/logging/", http.StatusOK, "login"},
		{http.MethodGet, "/api/user", http.StatusNotFound, ""},
		{http.MethodPost, "/api/user/unknown", http.StatusNotFound, ""},
		{http.MethodPost, "/logging", http.StatusNotFound, ""},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		e.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
		if tc.body != "" {
			assert.Equal(t, tc.body, w.Body.String(), "%s %s", tc.method, tc.path)
		}
	}
	assert.Equal(t, []string{"registerUser", "registerUser", "loggingUser", "loggingUser"}, h.calls)
}

func TestMount_根组(t *testing.T) {
	h := &recorder{}
	e := gin.New()
	NewUserRouter(h).Mount(&e.RouterGroup)

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, "register", w.Body.String())

	w = httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/logging", nil))
	assert.Equal(t, "login", w.Body.String())
}

func TestMount_重复路由只挂第一条(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	r := New(WithLogger(logx.NewZapLogger(zap.New(core))))
	r.Add(Route{Method: http.MethodPost, Path: "/x", Name: "first", Handler: func(c *gin.Context) { c.String(http.StatusOK, "first") }})
	r.Add(Route{Method: http.MethodPost, Path: "/x/", Name: "second", Handler: func(c *gin.Context) { c.String(http.StatusOK, "second") }})

	e := gin.New()
	require.NotPanics(t, func() { r.Mount(e.Group("/p")) })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/p/x/", nil))
	assert.Equal(t, "first", w.Body.String())
	require.Len(t, observed.FilterMessage("duplicate route ignored").All(), 1)
}

func TestRelativePath(t *testing.T) {
	r := New()
	r.base = "/api/user"

	rel, ok := r.relativePath("/api/user")
	assert.True(t, ok)
	assert.Equal(t, "/", rel)

	rel, ok = r.relativePath("/api/user/logging")
	assert.True(t, ok)
	assert.Equal(t, "/logging", rel)

	_, ok = r.relativePath("/api/username")
	assert.False(t, ok)
}

func TestJoinPaths(t *testing.T) {
	assert.Equal(t, "/api/user", joinPaths("/api/user", ""))
	assert.Equal(t, "/api/user/", joinPaths("/api/user", "/"))
	assert.Equal(t, "/api/user/logging/", joinPaths("/api/user", "/logging/"))
	assert.Equal(t, "/", joinPaths("/", "/"))
}
