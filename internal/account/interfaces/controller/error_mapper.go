package controller

import (
	"errors"
	"net/http"

	"UserCenter/internal/account/app"
	"UserCenter/internal/shared/transport"
	"UserCenter/modules/kit/errx"
)

const systemErrorMsg = "服务器繁忙，请稍后再试"

type clientError struct {
	status int
	code   int
	msg    string
}

// toClientError 业务拒绝走 200 + 业务码，技术错误走 500 且不暴露内部信息。
func toClientError(err error) clientError {
	switch {
	case errors.Is(err, app.ErrReqParam):
		return clientError{http.StatusOK, transport.InvalidParam, msgOf(err)}
	case errors.Is(err, app.ErrUserExist):
		return clientError{http.StatusOK, transport.UserExist, msgOf(err)}
	case errors.Is(err, app.ErrInvalidCredentials):
		return clientError{http.StatusOK, transport.PwdIncorrect, msgOf(err)}
	case errors.Is(err, app.ErrUserDisabled):
		return clientError{http.StatusOK, transport.UserDisabled, msgOf(err)}
	case errors.Is(err, app.ErrUnavailable):
		return clientError{http.StatusInternalServerError, transport.Unavailable, systemErrorMsg}
	default:
		return clientError{http.StatusInternalServerError, transport.SystemError, systemErrorMsg}
	}
}

func msgOf(err error) string {
	if e, ok := errx.As(err); ok {
		return e.Msg()
	}
	return ""
}
