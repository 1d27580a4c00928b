package transport

// Response 是 HTTP 接口统一的响应体。
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

func Success(data any) Response {
	return Response{Code: OK, Data: data}
}

func Fail(code int, msg string) Response {
	return Response{Code: code, Msg: msg}
}
