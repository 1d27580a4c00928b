package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"UserCenter/internal/shared/config"
	"UserCenter/modules/kit/logx"
)

var ErrEmptyURI = errors.New("mongodb uri is empty")

// Open 连接并 ping 一次，返回 cfg.Database 对应的库。
func Open(ctx context.Context, cfg config.MongoDBConfig, log logx.Logger) (*mongo.Client, *mongo.Database, error) {
	if cfg.URI == "" {
		return nil, nil, ErrEmptyURI
	}
	if log == nil {
		log = logx.Nop()
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI).SetConnectTimeout(timeout))
	if err != nil {
		return nil, nil, err
	}
	if err = client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	log.Info("open mongodb success", zap.String("database", cfg.Database))
	return client, client.Database(cfg.Database), nil
}
