package interfaces

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"UserCenter/internal/account/app"
	"UserCenter/internal/account/infra/mongodb"
	"UserCenter/internal/account/infra/repo"
	"UserCenter/internal/account/interfaces/controller"
	"UserCenter/internal/account/interfaces/router"
	"UserCenter/internal/shared/config"
	"UserCenter/internal/shared/security"
	httpserver "UserCenter/internal/shared/transport/http"
	"UserCenter/internal/shared/transport/http/middleware"
	"UserCenter/internal/shared/utils"
	"UserCenter/modules/kit/logx"
)

const HistoryDriverMongo = "mongo"

type Deps struct {
	DB *gorm.DB
	// Mongo 只在 history.driver=mongo 时使用，可以为 nil。
	Mongo  *mongo.Database
	Config config.Config
	Log    logx.Logger
	// BcryptCost 为 0 时使用 bcrypt.DefaultCost。
	BcryptCost int
}

// Module 组装 repo -> service -> controller -> router，并实现 httpserver.Registrar。
type Module struct {
	router  *router.Router
	limiter *middleware.RateLimiter
	log     logx.Logger
}

func New(ctx context.Context, d Deps) (*Module, error) {
	log := d.Log
	if log == nil {
		log = logx.Nop()
	}
	cfg := d.Config

	if cfg.Database.AutoMigrate {
		if err := repo.AutoMigrate(d.DB); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	histories, err := newHistoryRepo(ctx, d, log)
	if err != nil {
		return nil, err
	}

	ids, err := utils.NewSnowflake(cfg.Snowflake.NodeID)
	if err != nil {
		return nil, err
	}

	svc := app.NewUserService(app.Deps{
		Users:      repo.NewUserRepo(d.DB),
		Histories:  histories,
		LastLogins: repo.NewLoginLastRepo(d.DB),
		Hasher:     security.NewBcryptHasher(d.BcryptCost),
		Tokens:     security.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer),
		IDs:        ids,
		Log:        log,
	})
	ctrl := controller.NewUserController(svc, log)

	m := &Module{
		router: router.NewUserRouter(ctrl,
			router.WithNotFound(httpserver.NotFound),
			router.WithLogger(log),
		),
		log: log,
	}
	if cfg.RateLimit.Enabled {
		m.limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.ClientTTL)
	}
	return m, nil
}

func newHistoryRepo(ctx context.Context, d Deps, log logx.Logger) (app.LoginHistoryRepo, error) {
	if d.Config.History.Driver != HistoryDriverMongo {
		return repo.NewLoginHistoryRepo(d.DB), nil
	}
	if d.Mongo == nil {
		return nil, fmt.Errorf("history.driver=%s but mongodb is not connected", HistoryDriverMongo)
	}
	r := mongodb.NewLoginHistoryRepo(d.Mongo)
	if err := r.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	log.Info("login history stored in mongodb", zap.String("database", d.Mongo.Name()))
	return r, nil
}

// HttpRegister 在父分组下挂限流和用户路由表。
func (m *Module) HttpRegister(g *gin.RouterGroup) {
	sub := g.Group("")
	if m.limiter != nil {
		sub.Use(middleware.RateLimit(m.limiter, m.log))
	}
	m.router.Mount(sub)
}

func (m *Module) Router() *router.Router {
	return m.router
}

// RateLimiter 未开启限流时返回 nil。
func (m *Module) RateLimiter() *middleware.RateLimiter {
	return m.limiter
}
