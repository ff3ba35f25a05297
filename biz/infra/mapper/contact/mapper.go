package contact

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
	collection     = "contact"
	cacheKeyPrefix = "cache:contact:"
)

type MongoMapper interface {
	Insert(ctx context.Context, c *Contact) (*Contact, error)
	FindById(ctx context.Context, id string) (*Contact, error)
	ListByOrganization(ctx context.Context, orgId primitive.ObjectID) ([]*Contact, error)
	SetOrganization(ctx context.Context, id, orgId primitive.ObjectID) error
}

type mongoMapper struct {
	conn *monc.Model
}

func NewContactMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

func (m *mongoMapper) Insert(ctx context.Context, c *Contact) (*Contact, error) {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	now := time.Now()
	c.CreateTime, c.UpdateTime = now, now
	_, err := m.conn.InsertOne(ctx, cacheKeyPrefix+c.ID.Hex(), c)
	return c, err
}

func (m *mongoMapper) FindById(ctx context.Context, id string) (*Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logs.Errorf("[mapper] [contact] [FindById] from hex err:%v", err)
		return nil, err
	}
	var c Contact
	err = m.conn.FindOne(ctx, cacheKeyPrefix+id, &c, bson.M{cst.Id: oid})
	return &c, err
}

// ListByOrganization 按名称升序返回组织内联系人
func (m *mongoMapper) ListByOrganization(ctx context.Context, orgId primitive.ObjectID) ([]*Contact, error) {
	var cs []*Contact
	opts := options.Find().SetSort(bson.M{cst.Name: 1})
	if err := m.conn.Find(ctx, &cs, bson.M{cst.OrganizationId: orgId}, opts); err != nil {
		return nil, err
	}
	return cs, nil
}

// SetOrganization 补齐联系人缺失的组织归属
func (m *mongoMapper) SetOrganization(ctx context.Context, id, orgId primitive.ObjectID) error {
	_, err := m.conn.UpdateOne(ctx, cacheKeyPrefix+id.Hex(), bson.M{cst.Id: id},
		bson.M{cst.Set: bson.M{cst.OrganizationId: orgId, cst.UpdateTime: time.Now()}})
	return err
}
