package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"UserCenter/internal/account/domain"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetUserByUserName(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound.WithData("username", username)
	}
	return nil, domain.ErrSystemUnavailable.WithData("username", username).WithCause(err)
}

// Create 只插入；唯一键冲突需要 gorm.Config.TranslateError 才能识别。
func (r *UserRepo) Create(ctx context.Context, user domain.User) error {
	err := r.db.WithContext(ctx).Create(&user).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrUserDuplicated.WithData("username", user.Username).WithCause(err)
	}
	return domain.ErrSystemUnavailable.WithData("username", user.Username).WithCause(err)
}
