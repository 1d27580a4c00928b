package transport

// BizCode 是响应体里 code 字段的强类型封装。
type BizCode int

// 客户端业务码。0 成功；1~499 业务拒绝；>=500 系统错误（访问日志按此分级）。
const (
	OK            = 0
	InvalidParam  = 1
	UserExist     = 2
	PwdIncorrect  = 3
	UserDisabled  = 4
	RateLimited   = 5
	RouteNotFound = 6

	SystemError = 500
	Unavailable = 503
)
