package logx

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// ErrorLog 是从错误链里提取出的可读结构。
type ErrorLog struct {
	Error      string
	Code       string
	Msg        string
	Reason     string
	Data       map[string]any
	CauseChain []string
	Origin     string
	Stack      string
}

// BuildErrorLog 通过鸭子类型读取 code/msg/reason/data/stack，不依赖具体错误实现。
func BuildErrorLog(err error) ErrorLog {
	if err == nil {
		return ErrorLog{}
	}
	out := ErrorLog{Error: err.Error()}

	var cp interface{ CodeText() string }
	if errors.As(err, &cp) {
		out.Code = cp.CodeText()
	}
	var mp interface{ Msg() string }
	if errors.As(err, &mp) {
		out.Msg = mp.Msg()
	}
	var dp interface{ Data() map[string]any }
	if errors.As(err, &dp) {
		out.Data = dp.Data()
	}
	var rp interface{ Reason() string }
	if errors.As(err, &rp) {
		out.Reason = rp.Reason()
	}
	out.Origin, out.Stack = formatStack(firstStack(err), 32)
	out.CauseChain = buildCauseChain(err, 20)
	return out
}

// firstStack 返回链上第一个非空栈（系统错误只在最早的转换处捕获）。
func firstStack(err error) []uintptr {
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		if sp, ok := cur.(interface{ Stack() []uintptr }); ok {
			if pcs := sp.Stack(); len(pcs) != 0 {
				return pcs
			}
		}
	}
	return nil
}

func buildCauseChain(err error, maxDepth int) []string {
	out := make([]string, 0, 4)
	cur := errors.Unwrap(err)
	for i := 0; i < maxDepth && cur != nil; i++ {
		out = append(out, fmt.Sprintf("%T: %v", cur, cur))
		cur = errors.Unwrap(cur)
	}
	return out
}

func formatStack(pcs []uintptr, maxFrames int) (origin string, stack string) {
	if len(pcs) == 0 || maxFrames <= 0 {
		return "", ""
	}
	frames := runtime.CallersFrames(pcs)
	lines := make([]string, 0, maxFrames)
	for i := 0; i < maxFrames; i++ {
		f, more := frames.Next()
		if f.Function == "" && f.File == "" && f.Line == 0 {
			break
		}
		line := f.Function + " " + f.File + ":" + strconv.Itoa(f.Line)
		if origin == "" {
			origin = line
		}
		lines = append(lines, line)
		if !more {
			break
		}
	}
	return origin, strings.Join(lines, "\n")
}
