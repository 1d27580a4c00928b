package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"UserCenter/internal/shared/transport"
	"UserCenter/modules/kit/logx"
	"UserCenter/modules/kit/tracex"
)

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(data []byte) (int, error) {
	_, _ = w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	_, _ = w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// AccessLog 为每个请求建立 AccessLog 上下文，结束时从响应体的 code 字段取业务码写一条访问日志。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		action := c.Request.Method + " " + route

		ctx := transport.NewContext(c.Request.Context(), action, c.GetHeader(tracex.HeaderTraceID))
		c.Request = c.Request.WithContext(ctx)
		if tid, ok := tracex.TraceIDFrom(ctx); ok {
			c.Header(tracex.HeaderTraceID, tid)
		}

		bw := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = bw

		c.Next()

		switch bizCode, ok := parseBizCode(bw.body.Bytes()); {
		case ok:
			transport.SetBizCode(ctx, transport.BizCode(bizCode))
		case c.Writer.Status() >= http.StatusBadRequest:
			transport.SetBizCode(ctx, transport.BizCode(transport.SystemError))
		default:
			transport.SetBizCode(ctx, transport.BizCode(transport.OK))
		}

		transport.WriteAccessLog(ctx, log,
			zap.Int("status", c.Writer.Status()),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// parseBizCode 按 {"code":123, ...} 解析响应体。
func parseBizCode(body []byte) (int, bool) {
	if len(body) == 0 {
		return 0, false
	}
	var payload struct {
		Code *int `json:"code"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Code == nil {
		return 0, false
	}
	return *payload.Code, true
}
