package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"UserCenter/internal/account/domain"
)

const loginHistoryCollection = "login_history"

// LoginHistoryRepo 把登录历史写进 mongo，适合只追加的大量记录。
type LoginHistoryRepo struct {
	coll *mongo.Collection
}

func NewLoginHistoryRepo(db *mongo.Database) *LoginHistoryRepo {
	return &LoginHistoryRepo{coll: db.Collection(loginHistoryCollection)}
}

// EnsureIndexes 建 {uid:1, ctime:-1} 索引，重复调用无副作用。
func (r *LoginHistoryRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "uid", Value: 1}, {Key: "ctime", Value: -1}},
		Options: options.Index().SetName("idx_uid_time"),
	})
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("collection", loginHistoryCollection).WithCause(err)
	}
	return nil
}

func (r *LoginHistoryRepo) Save(ctx context.Context, history domain.LoginHistory) error {
	if _, err := r.coll.InsertOne(ctx, history); err != nil {
		return domain.ErrSystemUnavailable.WithData("uid", history.UId).WithCause(err)
	}
	return nil
}

func (r *LoginHistoryRepo) ListByUID(ctx context.Context, uid int64, limit int) ([]domain.LoginHistory, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "ctime", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.D{{Key: "uid", Value: uid}}, opts)
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("uid", uid).WithCause(err)
	}
	var out []domain.LoginHistory
	if err = cur.All(ctx, &out); err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("uid", uid).WithCause(err)
	}
	return out, nil
}
