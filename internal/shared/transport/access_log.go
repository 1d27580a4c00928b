package transport

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"UserCenter/modules/kit/logx"
	"UserCenter/modules/kit/tracex"
)

// AccessLog 是请求级日志上下文，中间件创建，handler 补充 biz_code / error_reason。
type AccessLog struct {
	mu          sync.Mutex
	bizCode     BizCode
	errorReason string
	startTime   time.Time
	action      string
}

type accessLogKey struct{}

// NewContext 挂上 AccessLog 与 trace/span；traceID 为空时新建。
func NewContext(parent context.Context, action, traceID string) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	if action == "" {
		action = "unknown"
	}
	ctx := tracex.EnsureTraceID(parent, traceID)
	ctx = tracex.WithSpanID(ctx, "account")

	al := &AccessLog{
		bizCode:   BizCode(SystemError),
		startTime: time.Now(),
		action:    action,
	}
	return context.WithValue(ctx, accessLogKey{}, al)
}

func FromContext(ctx context.Context) *AccessLog {
	if ctx == nil {
		return nil
	}
	al, _ := ctx.Value(accessLogKey{}).(*AccessLog)
	return al
}

func SetBizCode(ctx context.Context, code BizCode) {
	if al := FromContext(ctx); al != nil {
		al.mu.Lock()
		al.bizCode = code
		al.mu.Unlock()
	}
}

// SetErrorReason 记录失败原因码，写进访问日志的 error_reason。
func SetErrorReason(ctx context.Context, reason string) {
	if reason == "" {
		return
	}
	if al := FromContext(ctx); al != nil {
		al.mu.Lock()
		al.errorReason = reason
		al.mu.Unlock()
	}
}

// BizCodeOf 读取当前记录的业务码，没有 AccessLog 时返回 SystemError。
func BizCodeOf(ctx context.Context) BizCode {
	al := FromContext(ctx)
	if al == nil {
		return BizCode(SystemError)
	}
	al.mu.Lock()
	defer al.mu.Unlock()
	return al.bizCode
}

// WriteAccessLog 输出一条访问日志，中间件在请求结束时调用。
func WriteAccessLog(ctx context.Context, log logx.Logger, extra ...zap.Field) {
	al := FromContext(ctx)
	if al == nil || log == nil {
		return
	}

	al.mu.Lock()
	code, reason := al.bizCode, al.errorReason
	al.mu.Unlock()

	fields := []zap.Field{zap.Duration("latency", time.Since(al.startTime))}
	if code == BizCode(OK) {
		fields = append(fields, zap.String("result", "success"))
	} else {
		fields = append(fields, zap.String("result", "failure"))
		if reason != "" {
			fields = append(fields, zap.String("error_reason", reason))
		}
	}
	fields = append(fields, extra...)
	logx.ReportAccess(ctx, log, al.action, int(code), fields...)
}
