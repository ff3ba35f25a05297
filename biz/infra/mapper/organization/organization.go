package organization

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization 组织, 数据隔离的租户单元
type Organization struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Slug           string             `json:"slug" bson:"slug"`
	Name           string             `json:"name" bson:"name"`
	Description    string             `json:"description,omitempty" bson:"description,omitempty"`
	PrimaryColor   string             `json:"primary_color,omitempty" bson:"primary_color,omitempty"`
	SecondaryColor string             `json:"secondary_color,omitempty" bson:"secondary_color,omitempty"`
	CreateTime     time.Time          `json:"create_time" bson:"create_time"`
	UpdateTime     time.Time          `json:"update_time" bson:"update_time"`
}
