package model

type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Hardware string `json:"hardware"`
}

type RegisterResp struct {
	UId      int64  `json:"uid"`
	Username string `json:"username"`
}

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Hardware string `json:"hardware"`
	// Ip 由接口层从连接上取，不信任请求体。
	Ip string `json:"-"`
}

type LoginResp struct {
	UId      int64  `json:"uid"`
	Username string `json:"username"`
	Session  string `json:"session"`
}
