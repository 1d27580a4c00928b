package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"UserCenter/internal/account/app"
	"UserCenter/internal/account/app/model"
	"UserCenter/internal/shared/transport"
	"UserCenter/modules/kit/logx"
)

type UserUseCase interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.RegisterResp, error)
	Login(ctx context.Context, req model.LoginReq) (*model.LoginResp, error)
}

type UserController struct {
	users UserUseCase
	log   logx.Logger
}

func NewUserController(users UserUseCase, log logx.Logger) *UserController {
	if log == nil {
		log = logx.Nop()
	}
	return &UserController{users: users, log: log}
}

// RegisterUser POST / 注册新用户。
func (u *UserController) RegisterUser(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		u.fail(c, "user register", app.ErrReqParam.WithCause(err))
		return
	}

	resp, err := u.users.Register(ctx, req)
	if err != nil {
		u.fail(c, "user register", err)
		return
	}
	u.ok(c, resp)
}

// LoggingUser POST /logging 登录并返回会话令牌。
func (u *UserController) LoggingUser(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		u.fail(c, "user login", app.ErrReqParam.WithCause(err))
		return
	}
	req.Ip = c.ClientIP()

	resp, err := u.users.Login(ctx, req)
	if err != nil {
		u.fail(c, "user login", err)
		return
	}
	u.ok(c, resp)
}

func (u *UserController) ok(c *gin.Context, data any) {
	transport.SetBizCode(c.Request.Context(), transport.OK)
	c.JSON(http.StatusOK, transport.Success(data))
}

// fail 是接口层唯一打印错误日志的地方：业务拒绝记 INFO，技术错误记 ERROR 带栈。
func (u *UserController) fail(c *gin.Context, action string, err error) {
	ctx := c.Request.Context()
	m := toClientError(err)

	transport.SetBizCode(ctx, transport.BizCode(m.code))
	transport.SetErrorReason(ctx, app.ReasonOf(err))

	if m.status == http.StatusOK {
		logx.ReportBiz(ctx, u.log, logx.NewBizLog(action+" reject", app.ReasonOf(err), m.msg))
	} else {
		logx.ReportSysError(ctx, u.log, logx.NewSysLog(action+" tech error", err))
	}
	c.JSON(m.status, transport.Fail(m.code, m.msg))
}
