package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 坐席用户, 归属于一个组织
type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username       string             `json:"username" bson:"username"`
	Email          string             `json:"email" bson:"email"`
	DisplayName    string             `json:"display_name" bson:"display_name"`
	Password       string             `json:"-" bson:"password"` // bcrypt哈希, 不出现在响应中
	OrganizationId primitive.ObjectID `json:"organization_id" bson:"organization_id"`
	Role           string             `json:"role" bson:"role"` // owner/admin/agent
	AvatarColor    string             `json:"avatar_color,omitempty" bson:"avatar_color,omitempty"`
	CreateTime     time.Time          `json:"create_time" bson:"create_time"`
	UpdateTime     time.Time          `json:"update_time" bson:"update_time"`
}
