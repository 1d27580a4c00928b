package repo

import (
	"gorm.io/gorm"

	"UserCenter/internal/account/domain"
)

// AutoMigrate 建表或补齐 user_info / login_history / login_last 的列与索引。
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.LoginHistory{},
		&domain.LoginLast{},
	)
}
