package errx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Is_只按code比较语义(t *testing.T) {
	e1 := NewBiz("BIZ_X", "x").WithData("k", "v").WithCause(errors.New("cause1"))
	e2 := NewBiz("BIZ_X", "x2").WithData("k2", "v2").WithCause(errors.New("cause2"))
	assert.ErrorIs(t, e1, e2)
	assert.NotErrorIs(t, e1, NewBiz("BIZ_Y", "x"))
}

func TestError_业务错误不捕获栈_但保留cause链(t *testing.T) {
	cause := errors.New("db down")
	err := NewBiz("BIZ_LOGIN_FAIL", "用户名或密码错误").WithCause(cause)
	assert.Nil(t, err.Stack())
	assert.ErrorIs(t, err, cause)
	assert.True(t, err.IsBiz())
}

func TestError_系统错误捕获一次栈_且不重复捕获(t *testing.T) {
	sys := NewSys("SYS_DB_UNAVAILABLE", "系统不可用").WithCause(errors.New("io timeout"))
	require.NotEmpty(t, sys.Stack())

	sys2 := NewSys("SYS_UPSTREAM", "上游异常").WithCause(sys)
	assert.Nil(t, sys2.Stack(), "cause 链里已有栈，上层不应重复捕获")
}

func TestError_Data_防止外部map污染(t *testing.T) {
	m := map[string]any{"k": "v"}
	err := NewBiz("BIZ_X", "").WithDataMap(m)
	m["k"] = "mutated"
	assert.Equal(t, "v", err.Data()["k"])

	got := err.Data()
	got["k"] = "mutated"
	assert.Equal(t, "v", err.Data()["k"])
}

func TestError_Error_拼接code_msg_cause(t *testing.T) {
	assert.Equal(t, "X", NewBiz("X", "").Error())
	assert.Equal(t, "X: m", NewBiz("X", "m").Error())
	assert.Equal(t, "X: m: boom", NewBiz("X", "m").WithCause(errors.New("boom")).Error())
	assert.Equal(t, "X: boom", NewBiz("X", "").WithCause(errors.New("boom")).Error())
}

func TestAs_穿透fmt包装(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", ErrRateLimited.WithData("ip", "1.1.1.1"))
	e, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeRateLimited, e.Code())
	assert.True(t, IsBiz(wrapped))
	assert.False(t, IsBiz(ErrUnavailable))
	assert.False(t, IsBiz(errors.New("plain")))
}

func TestWithMsg_保留code(t *testing.T) {
	err := ErrReqParam.WithMsg("username 不合法")
	assert.ErrorIs(t, err, ErrReqParam)
	assert.Equal(t, "username 不合法", err.Msg())
	assert.Equal(t, "请求参数错误", ErrReqParam.Msg())
}
