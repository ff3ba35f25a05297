package organization

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
	collection     = "organization"
	cacheKeyPrefix = "cache:organization:"
)

type MongoMapper interface {
	Insert(ctx context.Context, org *Organization) (*Organization, error)
	FindById(ctx context.Context, id string) (*Organization, error)
	FindBySlug(ctx context.Context, slug string) (*Organization, error)
	ExistSlug(ctx context.Context, slug string) (bool, error)
	ListAll(ctx context.Context) ([]*Organization, error)
}

type mongoMapper struct {
	conn *monc.Model
}

func NewOrganizationMongoMapper(config *config.Config) MongoMapper {
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, collection, config.Cache)
	return &mongoMapper{conn: conn}
}

func (m *mongoMapper) Insert(ctx context.Context, org *Organization) (*Organization, error) {
	if org.ID.IsZero() {
		org.ID = primitive.NewObjectID()
	}
	now := time.Now()
	org.CreateTime, org.UpdateTime = now, now
	_, err := m.conn.InsertOne(ctx, cacheKeyPrefix+org.ID.Hex(), org)
	return org, err
}

func (m *mongoMapper) FindById(ctx context.Context, id string) (*Organization, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logs.Errorf("[mapper] [organization] [FindById] from hex err:%v", err)
		return nil, err
	}
	var org Organization
	err = m.conn.FindOne(ctx, cacheKeyPrefix+id, &org, bson.M{cst.Id: oid})
	return &org, err
}

func (m *mongoMapper) FindBySlug(ctx context.Context, slug string) (*Organization, error) {
	var org Organization
	err := m.conn.FindOneNoCache(ctx, &org, bson.M{cst.Slug: slug})
	return &org, err
}

func (m *mongoMapper) ExistSlug(ctx context.Context, slug string) (bool, error) {
	count, err := m.conn.CountDocuments(ctx, bson.M{cst.Slug: slug})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAll 按名称升序返回全部组织, 注册页选择组织时使用
func (m *mongoMapper) ListAll(ctx context.Context) ([]*Organization, error) {
	var orgs []*Organization
	opts := options.Find().SetSort(bson.M{cst.Name: 1})
	if err := m.conn.Find(ctx, &orgs, bson.M{}, opts); err != nil {
		return nil, err
	}
	return orgs, nil
}
