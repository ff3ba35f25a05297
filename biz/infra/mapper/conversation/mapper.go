package conversation

import (
	"context"
	"time"

	"github.com/chathub-im/chathub-core-api/biz/infra/config"
	"github.com/chathub-im/chathub-core-api/biz/infra/cst"
	"github.com/chathub-im/chathub-core-api/pkg/logs"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var _ MongoMapper = (*mongoMapper)(nil)

const (
	collection     = "conversation"
	cacheKeyPrefix = "cache:conversation:"
)

type MongoMapper interface {
	Insert(ctx context.Context, c *Conversation) (*Conversation, error)
	FindById(ctx context.Context, id string) (*Conversation, error)
	ListByOrganization(ctx context.Context, orgId primitive.ObjectID) ([]*Conversation, error)
	SetOrganization(ctx context.Context, id, orgId primitive.ObjectID) error
	AppendMessage(ctx context.Context, id, messageId primitive.ObjectID, preview string, sender *primitive.ObjectID) error
}

type mongoMapper struct {
	conn *monc.Model
}

func NewConversationMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

// Insert 创建并缓存一个新的会话
func (m *mongoMapper) Insert(ctx context.Context, c *Conversation) (*Conversation, error) {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	now := time.Now()
	c.CreateTime, c.UpdateTime = now, now
	if c.LastActivityTime.IsZero() {
		c.LastActivityTime = now
	}
	if c.Status == "" {
		c.Status = cst.ConversationOpen
	}
	if c.Participants == nil {
		c.Participants = []primitive.ObjectID{}
	}
	if c.Messages == nil {
		c.Messages = []primitive.ObjectID{}
	}
	_, err := m.conn.InsertOne(ctx, cacheKeyPrefix+c.ID.Hex(), c)
	return c, err
}

func (m *mongoMapper) FindById(ctx context.Context, id string) (*Conversation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logs.Errorf("[mapper] [conversation] [FindById] from hex err:%v", err)
		return nil, err
	}
	var c Conversation
	err = m.conn.FindOne(ctx, cacheKeyPrefix+id, &c, bson.M{cst.Id: oid})
	return &c, err
}

// ListByOrganization 按最近活跃时间倒序返回组织内会话
func (m *mongoMapper) ListByOrganization(ctx context.Context, orgId primitive.ObjectID) ([]*Conversation, error) {
	var cs []*Conversation
	opts := options.Find().SetSort(bson.M{cst.LastActivityTime: -1})
	if err := m.conn.Find(ctx, &cs, bson.M{cst.OrganizationId: orgId}, opts); err != nil {
		return nil, err
	}
	return cs, nil
}

// SetOrganization 补齐会话缺失的组织归属
func (m *mongoMapper) SetOrganization(ctx context.Context, id, orgId primitive.ObjectID) error {
	_, err := m.conn.UpdateOne(ctx, cacheKeyPrefix+id.Hex(), bson.M{cst.Id: id},
		bson.M{cst.Set: bson.M{cst.OrganizationId: orgId, cst.UpdateTime: time.Now()}})
	return err
}

// AppendMessage 消息落库后更新会话: 追加消息id, 刷新预览与活跃时间, 发送者加入参与者
func (m *mongoMapper) AppendMessage(ctx context.Context, id, messageId primitive.ObjectID, preview string, sender *primitive.ObjectID) error {
	now := time.Now()
	update := bson.M{
		cst.Push: bson.M{cst.Messages: messageId},
		cst.Set: bson.M{
			cst.LastMessagePreview: preview,
			cst.LastActivityTime:   now,
			cst.UpdateTime:         now,
		},
	}
	if sender != nil {
		update[cst.AddToSet] = bson.M{cst.Participants: *sender}
	}
	_, err := m.conn.UpdateOne(ctx, cacheKeyPrefix+id.Hex(), bson.M{cst.Id: id}, update)
	return err
}
