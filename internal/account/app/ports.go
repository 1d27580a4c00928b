package app

import (
	"context"

	"UserCenter/internal/account/domain"
)

// UserRepo 查不到用户时返回 domain.ErrUserNotFound，用户名冲突时返回 domain.ErrUserDuplicated。
type UserRepo interface {
	GetUserByUserName(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, u domain.User) error
}

type LoginHistoryRepo interface {
	Save(ctx context.Context, history domain.LoginHistory) error
}

// LoginLastRepo 查不到记录时返回 domain.ErrLastLoginNotFound。
type LoginLastRepo interface {
	GetLoginLast(ctx context.Context, uid int64) (domain.LoginLast, error)
	Save(ctx context.Context, ll domain.LoginLast) error
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hashed, plain string) bool
}

type TokenIssuer interface {
	Award(uid int64) (string, error)
}

type IDGenerator interface {
	NextID() int64
}
