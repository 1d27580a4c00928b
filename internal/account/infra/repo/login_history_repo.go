package repo

import (
	"context"

	"gorm.io/gorm"

	"UserCenter/internal/account/domain"
)

type LoginHistoryRepo struct {
	db *gorm.DB
}

func NewLoginHistoryRepo(db *gorm.DB) *LoginHistoryRepo {
	return &LoginHistoryRepo{db: db}
}

func (r *LoginHistoryRepo) Save(ctx context.Context, history domain.LoginHistory) error {
	if err := r.db.WithContext(ctx).Create(&history).Error; err != nil {
		return domain.ErrSystemUnavailable.WithData("uid", history.UId).WithCause(err)
	}
	return nil
}

// ListByUID 按时间倒序返回最近 limit 条记录。
func (r *LoginHistoryRepo) ListByUID(ctx context.Context, uid int64, limit int) ([]domain.LoginHistory, error) {
	var out []domain.LoginHistory
	err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("ctime DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("uid", uid).WithCause(err)
	}
	return out, nil
}
