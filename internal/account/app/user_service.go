package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"UserCenter/internal/account/app/model"
	"UserCenter/internal/account/domain"
	"UserCenter/modules/kit/logx"
)

const (
	minPasswordLen = 6
	// bcrypt 只处理前 72 字节。
	maxPasswordLen = 72
)

type Deps struct {
	Users      UserRepo
	Histories  LoginHistoryRepo
	LastLogins LoginLastRepo
	Hasher     PasswordHasher
	Tokens     TokenIssuer
	IDs        IDGenerator
	Log        logx.Logger
}

type UserService struct {
	userRepo UserRepo
	lhRepo   LoginHistoryRepo
	llRepo   LoginLastRepo
	hasher   PasswordHasher
	tokens   TokenIssuer
	ids      IDGenerator
	log      logx.Logger
	now      func() time.Time
}

func NewUserService(d Deps) *UserService {
	log := d.Log
	if log == nil {
		log = logx.Nop()
	}
	return &UserService{
		userRepo: d.Users,
		lhRepo:   d.Histories,
		llRepo:   d.LastLogins,
		hasher:   d.Hasher,
		tokens:   d.Tokens,
		ids:      d.IDs,
		log:      log,
		now:      time.Now,
	}
}

// Register 创建用户。用户名已存在时返回 ErrUserExist。
func (s *UserService) Register(ctx context.Context, req model.RegisterReq) (*model.RegisterResp, error) {
	if err := validateCredentials(req.Username, req.Password); err != nil {
		return nil, err
	}

	_, err := s.userRepo.GetUserByUserName(ctx, req.Username)
	switch {
	case err == nil:
		return nil, ErrUserExist.WithReason(ReasonRegisterUserExist).WithData("username", req.Username)
	case errors.Is(err, domain.ErrUserNotFound):
	default:
		return nil, ErrUnavailable.WithReason(ReasonUserRepoUnavailable).WithCause(err)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, ErrInternalServer.WithReason(ReasonPasswordHashFail).WithCause(err)
	}

	now := s.now()
	u := domain.User{
		UId:      s.ids.NextID(),
		Username: req.Username,
		Passwd:   hashed,
		Hardware: req.Hardware,
		Status:   domain.UserNormal,
		Ctime:    now,
		Mtime:    now,
	}
	if err = s.userRepo.Create(ctx, u); err != nil {
		// 查询与插入之间被并发注册抢先。
		if errors.Is(err, domain.ErrUserDuplicated) {
			return nil, ErrUserExist.WithReason(ReasonRegisterUserExist).WithData("username", req.Username)
		}
		return nil, ErrUnavailable.WithReason(ReasonUserCreateFail).WithCause(err)
	}

	return &model.RegisterResp{UId: u.UId, Username: u.Username}, nil
}

// Login 校验凭证并签发会话令牌，成功后写登录历史并刷新最后登录记录。
func (s *UserService) Login(ctx context.Context, req model.LoginReq) (*model.LoginResp, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrReqParam.WithMsg("用户名和密码不能为空")
	}

	user, err := s.userRepo.GetUserByUserName(ctx, req.Username)
	if err != nil {
		// 用户不存在与密码错误对外同一个错误。
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrInvalidCredentials.WithReason(ReasonLoginUserNotFound)
		}
		return nil, ErrUnavailable.WithReason(ReasonUserRepoUnavailable).WithCause(err)
	}

	now := s.now()
	if !user.CheckPassword(req.Password, s.hasher.Verify) {
		s.recordFailedLogin(ctx, *user, req, now)
		return nil, ErrInvalidCredentials.WithReason(ReasonLoginPasswordMismatch).WithData("uid", user.UId)
	}
	if user.Disabled() {
		return nil, ErrUserDisabled.WithReason(ReasonLoginUserDisabled).WithData("uid", user.UId)
	}

	token, err := s.tokens.Award(user.UId)
	if err != nil {
		return nil, ErrInternalServer.WithReason(ReasonTokenIssue).WithData("uid", user.UId).WithCause(err)
	}

	lh := domain.LoginHistory{
		UId:      user.UId,
		CTime:    now,
		Ip:       req.Ip,
		State:    domain.LoginSuccess,
		Hardware: req.Hardware,
	}
	if err = s.lhRepo.Save(ctx, lh); err != nil {
		return nil, ErrUnavailable.WithReason(ReasonLoginHistoryWriteFail).WithCause(err)
	}

	ll, err := s.llRepo.GetLoginLast(ctx, user.UId)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrLastLoginNotFound):
		ll = domain.LoginLast{UId: user.UId}
	default:
		return nil, ErrUnavailable.WithReason(ReasonLoginLastReadFail).WithCause(err)
	}
	ll.Refresh(now, req.Ip, token, req.Hardware)
	if err = s.llRepo.Save(ctx, ll); err != nil {
		return nil, ErrUnavailable.WithReason(ReasonLoginLastWriteFail).WithCause(err)
	}

	return &model.LoginResp{
		UId:      user.UId,
		Username: user.Username,
		Session:  token,
	}, nil
}

// recordFailedLogin 写失败登录历史，失败只记日志。
func (s *UserService) recordFailedLogin(ctx context.Context, user domain.User, req model.LoginReq, at time.Time) {
	lh := domain.LoginHistory{
		UId:      user.UId,
		CTime:    at,
		Ip:       req.Ip,
		State:    domain.LoginFail,
		Hardware: req.Hardware,
	}
	if err := s.lhRepo.Save(ctx, lh); err != nil {
		s.log.WithContext(ctx).Warn("save failed login history",
			zap.Int64("uid", user.UId),
			zap.String("reason", ReasonLoginHistoryWriteFail.Code),
			zap.Error(err),
		)
	}
}

func validateCredentials(username, password string) error {
	if !domain.ValidUsername(username) {
		return ErrReqParam.WithMsg(ReasonInvalidUsername.Message).WithReason(ReasonInvalidUsername)
	}
	if n := len(password); n < minPasswordLen || n > maxPasswordLen {
		return ErrReqParam.WithMsg(ReasonInvalidPassword.Message).WithReason(ReasonInvalidPassword)
	}
	return nil
}
