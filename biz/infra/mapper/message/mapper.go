package message

import (
	"context"
	"errors"
	"time"

	"github.com/chathub-im/chathub-core-api/biz/infra/config"
	"github.com/chathub-im/chathub-core-api/biz/infra/cst"
	"github.com/chathub-im/chathub-core-api/pkg/errorx"
	"github.com/chathub-im/chathub-core-api/pkg/logs"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var _ MongoMapper = (*mongoMapper)(nil)

const (
	collection = "message"
)

type MongoMapper interface {
	Insert(ctx context.Context, msg *Message) (*Message, error)
	ListByConversation(ctx context.Context, conversationId primitive.ObjectID) ([]*Message, error)
}

type mongoMapper struct {
	conn *monc.Model
}

func NewMessageMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

// Insert 插入一条消息, 消息只追加不更新, 不进缓存
func (m *mongoMapper) Insert(ctx context.Context, msg *Message) (*Message, error) {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	msg.CreateTime = time.Now()
	_, err := m.conn.InsertOneNoCache(ctx, msg)
	return msg, err
}

// ListByConversation 按创建时间升序返回会话全部消息
func (m *mongoMapper) ListByConversation(ctx context.Context, conversationId primitive.ObjectID) ([]*Message, error) {
	var msgs []*Message
	opts := options.Find().SetSort(bson.M{cst.CreateTime: 1})
	if err := m.conn.Find(ctx, &msgs, bson.M{cst.ConversationId: conversationId},
		opts); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		logs.Errorf("[mapper] [message] find err:%s", errorx.ErrorWithoutStack(err))
		return nil, err
	}
	return msgs, nil
}
