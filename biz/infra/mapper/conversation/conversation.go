package conversation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation 与某个联系人的会话
// organization_id在旧数据中可能缺失, 首次访问时由访问方补齐
type Conversation struct {
	ID                 primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Channel            string               `json:"channel" bson:"channel"` // WhatsApp/Web Chat/SMS
	ContactId          primitive.ObjectID   `json:"contact_id" bson:"contact_id"`
	OrganizationId     primitive.ObjectID   `json:"organization_id" bson:"organization_id,omitempty"`
	CreatedBy          primitive.ObjectID   `json:"created_by,omitempty" bson:"created_by,omitempty"`
	Participants       []primitive.ObjectID `json:"participants" bson:"participants"`
	Status             string               `json:"status" bson:"status"` // open/pending/resolved
	Messages           []primitive.ObjectID `json:"messages" bson:"messages"`
	LastMessagePreview string               `json:"last_message_preview,omitempty" bson:"last_message_preview,omitempty"`
	LastActivityTime   time.Time            `json:"last_activity_time" bson:"last_activity_time"`
	CreateTime         time.Time            `json:"create_time" bson:"create_time"`
	UpdateTime         time.Time            `json:"update_time" bson:"update_time"`
}
