package contact

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact 客户联系人, 归属于一个组织
// 早期数据可能缺失organization_id, 首次访问时由访问方补齐
type Contact struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Phone          string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email          string             `json:"email,omitempty" bson:"email,omitempty"`
	OrganizationId primitive.ObjectID `json:"organization_id" bson:"organization_id,omitempty"`
	CreatedBy      primitive.ObjectID `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreateTime     time.Time          `json:"create_time" bson:"create_time"`
	UpdateTime     time.Time          `json:"update_time" bson:"update_time"`
}
