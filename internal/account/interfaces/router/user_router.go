package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserHandlers 由 controller.UserController 实现。
type UserHandlers interface {
	RegisterUser(c *gin.Context)
	LoggingUser(c *gin.Context)
}

// NewUserRouter 建立用户路由表：
//
//	POST /        -> registerUser
//	POST /logging -> loggingUser
func NewUserRouter(h UserHandlers, opts ...Option) *Router {
	r := New(opts...)
	r.Add(Route{Method: http.MethodPost, Path: "/", Name: "registerUser", Handler: h.RegisterUser})
	r.Add(Route{Method: http.MethodPost, Path: "/logging", Name: "loggingUser", Handler: h.LoggingUser})
	return r
}
