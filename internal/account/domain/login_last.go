package domain

import "time"

// LoginLast 每个用户一行，成功登录时 upsert。
type LoginLast struct {
	Id         int64      `gorm:"column:id;primaryKey;autoIncrement;comment:主键ID" json:"id"`
	UId        int64      `gorm:"column:uid;uniqueIndex;not null;comment:用户ID" json:"uid"`
	LoginTime  time.Time  `gorm:"column:login_time;comment:登录时间" json:"login_time"`
	LogoutTime *time.Time `gorm:"column:logout_time;comment:登出时间" json:"logout_time"`
	Ip         string     `gorm:"column:ip;type:varchar(50);comment:IP地址" json:"ip"`
	Session    string     `gorm:"column:session;type:varchar(512);comment:会话令牌" json:"session"`
	IsLogout   int8       `gorm:"column:is_logout;default:0;comment:是否已登出 0否 1是" json:"is_logout"`
	Hardware   string     `gorm:"column:hardware;type:varchar(255);comment:硬件信息" json:"hardware"`
}

func (LoginLast) TableName() string {
	return "login_last"
}

// Refresh 用一次成功登录覆盖会话信息。
func (ll *LoginLast) Refresh(at time.Time, ip, session, hardware string) {
	ll.LoginTime = at
	ll.LogoutTime = nil
	ll.Ip = ip
	ll.Session = session
	ll.Hardware = hardware
	ll.IsLogout = 0
}
