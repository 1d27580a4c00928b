package domain

import "UserCenter/modules/kit/errx"

// Code 是领域错误码。领域层只表达“是什么错”，cause 仅用于溯源。
type Code = errx.Code

const (
	CodeUserNotFound      Code = "ACCOUNT_USER_NOT_FOUND"
	CodeLastLoginNotFound Code = "ACCOUNT_LAST_LOGIN_NOT_FOUND"
	CodeUserDuplicated    Code = "ACCOUNT_USER_DUPLICATED"
	CodeSystemUnavailable Code = errx.CodeUnavailable
)

type Error = errx.Error

func NewError(code Code, data map[string]any, cause error) *Error {
	base := newByCode(code)
	if data != nil {
		base = base.WithDataMap(data)
	}
	if cause != nil {
		base = base.WithCause(cause)
	}
	return base
}

var (
	ErrUserNotFound      = errx.NewBiz(CodeUserNotFound, "")
	ErrLastLoginNotFound = errx.NewBiz(CodeLastLoginNotFound, "")
	ErrUserDuplicated    = errx.NewBiz(CodeUserDuplicated, "")
	ErrSystemUnavailable = errx.ErrUnavailable
)

func newByCode(code Code) *Error {
	if code == CodeSystemUnavailable {
		return errx.ErrUnavailable
	}
	return errx.NewBiz(code, "")
}
