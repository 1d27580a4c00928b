package app

type Reason struct {
	Code    string
	Message string
}

func (r Reason) ReasonCode() string {
	return r.Code
}

func NewReason(c, m string) Reason {
	return Reason{Code: c, Message: m}
}

var (
	// 业务拒绝，由接口层映射为客户端业务码。
	ReasonLoginUserNotFound     = NewReason("LOGIN_USER_NOT_FOUND", "用户不存在")
	ReasonLoginPasswordMismatch = NewReason("LOGIN_PASSWORD_MISMATCH", "密码错误")
	ReasonLoginUserDisabled     = NewReason("LOGIN_USER_DISABLED", "用户已被禁用")
	ReasonRegisterUserExist     = NewReason("REGISTER_USER_EXIST", "用户已存在")
	ReasonInvalidUsername       = NewReason("INVALID_USERNAME", "用户名需为4~20位字母、数字或下划线")
	ReasonInvalidPassword       = NewReason("INVALID_PASSWORD", "密码长度需为6~72位")
)

var (
	// 技术错误，只用于日志与排障。
	ReasonUserRepoUnavailable   = NewReason("USER_REPO_UNAVAILABLE", "用户存储库不可用")
	ReasonUserCreateFail        = NewReason("USER_CREATE_FAIL", "用户创建失败")
	ReasonPasswordHashFail      = NewReason("PASSWORD_HASH_FAIL", "密码哈希失败")
	ReasonTokenIssue            = NewReason("TOKEN_ISSUE", "令牌签发失败")
	ReasonLoginHistoryWriteFail = NewReason("LOGIN_HISTORY_WRITE_FAIL", "登录历史写入失败")
	ReasonLoginLastReadFail     = NewReason("LOGIN_LAST_READ_FAIL", "最后登录读取失败")
	ReasonLoginLastWriteFail    = NewReason("LOGIN_LAST_WRITE_FAIL", "最后登录写入失败")
)
