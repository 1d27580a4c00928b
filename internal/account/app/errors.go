package app

import "UserCenter/modules/kit/errx"

// Code 是应用层错误码，贴近对外协议。
type Code = errx.Code

const (
	CodeInvalidCredentials Code = "AUTH_INVALID_CREDENTIAL"
	CodeUserExist          Code = "ACCOUNT_USER_EXIST"
	CodeUserDisabled       Code = "ACCOUNT_USER_DISABLED"
	CodeInternalServer     Code = errx.CodeInternal
	CodeUnavailable        Code = errx.CodeUnavailable
)

type Error = errx.Error

// 哨兵错误：通过 WithData/WithCause 派生，不要修改。
var (
	ErrInvalidCredentials = errx.NewBiz(CodeInvalidCredentials, "用户名或密码错误")
	ErrUserExist          = errx.NewBiz(CodeUserExist, "用户已存在")
	ErrUserDisabled       = errx.NewBiz(CodeUserDisabled, "用户已被禁用")
	ErrReqParam           = errx.ErrReqParam
	ErrInternalServer     = errx.ErrInternal
	ErrUnavailable        = errx.ErrUnavailable
)

// ReasonOf 读取链上第一个 *Error 的 reason。
func ReasonOf(err error) string {
	if e, ok := errx.As(err); ok {
		return e.Reason()
	}
	return ""
}

// AsError 取出链上第一个 *Error。
func AsError(err error) (*Error, bool) {
	return errx.As(err)
}

// IsBizErr 判断是否为业务拒绝。
func IsBizErr(err error) bool {
	return errx.IsBiz(err)
}
