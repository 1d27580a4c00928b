package domain

import (
	"regexp"
	"time"
)

const (
	UserDisabled int8 = 0
	UserNormal   int8 = 1
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{4,20}$`)

type User struct {
	UId      int64     `gorm:"column:uid;primaryKey;autoIncrement:false;comment:用户ID" json:"uid" bson:"uid"`
	Username string    `gorm:"column:username;type:varchar(20);uniqueIndex;not null;comment:用户名" json:"username" bson:"username"`
	Passwd   string    `gorm:"column:passwd;type:varchar(255);comment:密码哈希" json:"-" bson:"passwd"`
	Hardware string    `gorm:"column:hardware;type:varchar(100);comment:硬件指纹" json:"hardware" bson:"hardware"`
	Status   int8      `gorm:"column:status;not null;comment:状态 1正常 0禁用" json:"status" bson:"status"`
	Ctime    time.Time `gorm:"column:ctime;autoCreateTime;comment:创建时间" json:"ctime" bson:"ctime"`
	Mtime    time.Time `gorm:"column:mtime;autoUpdateTime;comment:更新时间" json:"mtime" bson:"mtime"`
}

func (User) TableName() string {
	return "user_info"
}

func (u User) Disabled() bool {
	return u.Status == UserDisabled
}

// CheckPassword 用 verify(hash, plain) 校验明文密码，空密码直接失败。
func (u User) CheckPassword(plain string, verify func(hashed, plain string) bool) bool {
	if plain == "" || u.Passwd == "" {
		return false
	}
	return verify(u.Passwd, plain)
}

// ValidUsername 4~20 位字母、数字或下划线。
func ValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}
