package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"UserCenter/internal/shared/transport"
	"UserCenter/modules/kit/logx"
	"UserCenter/modules/kit/tracex"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseBizCode(t *testing.T) {
	code, ok := parseBizCode([]byte(`{"code":3,"msg":"x"}`))
	assert.True(t, ok)
	assert.Equal(t, 3, code)

	_, ok = parseBizCode([]byte(`{"msg":"no code"}`))
	assert.False(t, ok)
	_, ok = parseBizCode([]byte(`not json`))
	assert.False(t, ok)
	_, ok = parseBizCode(nil)
	assert.False(t, ok)
}

func TestAccessLog_从响应体取业务码并回写trace头(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	e := gin.New()
	e.Use(AccessLog(logx.NewZapLogger(zap.New(core))))
	e.POST("/logging", func(c *gin.Context) {
		c.JSON(http.StatusOK, transport.Fail(transport.PwdIncorrect, "用户名或密码错误"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/logging", nil)
	req.Header.Set(tracex.HeaderTraceID, "trace-abc")
	e.ServeHTTP(w, req)

	assert.Equal(t, "trace-abc", w.Header().Get(tracex.HeaderTraceID))
	entries := observed.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, transport.PwdIncorrect, fields["biz_code"])
	assert.Equal(t, "POST /logging", fields["action"])
	assert.Equal(t, "trace-abc", fields["trace_id"])
}

func TestAccessLog_无业务码时按HTTP状态判定(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	e := gin.New()
	e.Use(AccessLog(logx.NewZapLogger(zap.New(core))))

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Len(t, observed.All(), 1)
	assert.EqualValues(t, transport.SystemError, observed.All()[0].ContextMap()["biz_code"])
}

func TestCors_白名单与预检(t *testing.T) {
	e := gin.New()
	e.Use(Cors([]string{"http://ok.example"}))
	e.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://ok.example")
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://ok.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter_超过burst后拒绝并按ttl清理(t *testing.T) {
	rl := NewRateLimiter(1, 2, time.Minute)
	now := time.Unix(1000, 0)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"), "不同客户端互不影响")

	now = now.Add(2 * time.Second)
	assert.True(t, rl.Allow("1.1.1.1"), "令牌按速率恢复")

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 2, rl.Cleanup())
	assert.Zero(t, rl.size())
}

func TestRateLimit_中间件返回429(t *testing.T) {
	e := gin.New()
	e.Use(RateLimit(NewRateLimiter(0.001, 1, time.Minute), nil))
	e.POST("/", func(c *gin.Context) { c.JSON(http.StatusOK, transport.Success(nil)) })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"code":5,"msg":"请求过于频繁"}`, w.Body.String())
}

func TestHTTPMetrics_按路由模板计数(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	e := gin.New()
	e.Use(m.Handler())
	e.POST("/logging", func(c *gin.Context) { c.Status(http.StatusOK) })

	for range 2 {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/logging", nil))
	}
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/nope", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/logging", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "unmatched", "404")))
}
