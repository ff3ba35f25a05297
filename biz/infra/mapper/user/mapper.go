package user

import (
	"context"
	"time"

	"github.com/chathub-im/chathub-core-api/biz/infra/config"
	"github.com/chathub-im/chathub-core-api/biz/infra/cst"
	"github.com/chathub-im/chathub-core-api/pkg/errorx"
	"github.com/chathub-im/chathub-core-api/pkg/logs"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var _ MongoMapper = (*mongoMapper)(nil)

const (
	collection     = "user"
	cacheKeyPrefix = "cache:user:"
)

type MongoMapper interface {
	Insert(ctx context.Context, u *User) (*User, error)
	FindById(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	ExistUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type mongoMapper struct {
	conn *monc.Model
}

func NewUserMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

// Insert 插入新用户并缓存
func (m *mongoMapper) Insert(ctx context.Context, u *User) (*User, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := time.Now()
	u.CreateTime, u.UpdateTime = now, now
	_, err := m.conn.InsertOne(ctx, cacheKeyPrefix+u.ID.Hex(), u)
	return u, err
}

func (m *mongoMapper) FindById(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logs.Errorf("[mapper] [user] [FindById] from hex err:%v", err)
		return nil, err
	}
	var u User
	err = m.conn.FindOne(ctx, cacheKeyPrefix+id, &u, bson.M{cst.Id: oid})
	return &u, err
}

// FindByUsername 登录路径使用, 不走缓存, 返回带密码哈希的完整文档
func (m *mongoMapper) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := m.conn.FindOneNoCache(ctx, &u, bson.M{cst.Username: username})
	return &u, err
}

// ExistUsernameOrEmail 注册前的唯一性检查
func (m *mongoMapper) ExistUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	count, err := m.conn.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{cst.Username: username},
		bson.M{cst.Email: email},
	}})
	if err != nil {
		logs.Errorf("[mapper] [user] [ExistUsernameOrEmail] count err:%s", errorx.ErrorWithoutStack(err))
		return false, err
	}
	return count > 0, nil
}
