package domain

import "time"

const (
	LoginFail    int8 = 0
	LoginSuccess int8 = 1
)

// LoginHistory 只追加，不更新。
type LoginHistory struct {
	Id       int64     `gorm:"column:id;primaryKey;autoIncrement;comment:主键ID" json:"id" bson:"-"`
	UId      int64     `gorm:"column:uid;index:idx_uid_time;not null;comment:用户ID" json:"uid" bson:"uid"`
	CTime    time.Time `gorm:"column:ctime;autoCreateTime;index:idx_uid_time;comment:登录时间" json:"ctime" bson:"ctime"`
	Ip       string    `gorm:"column:ip;type:varchar(50);comment:IP地址" json:"ip" bson:"ip"`
	State    int8      `gorm:"column:state;not null;comment:登录状态 1成功 0失败" json:"state" bson:"state"`
	Hardware string    `gorm:"column:hardware;type:varchar(255);comment:硬件信息" json:"hardware" bson:"hardware"`
}

func (LoginHistory) TableName() string {
	return "login_history"
}
