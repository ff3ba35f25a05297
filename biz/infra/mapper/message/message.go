package message

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message 会话中的一条消息, 落库后不可变
// inbound消息来自外部渠道, 没有sender_id
type Message struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	ConversationId primitive.ObjectID  `json:"conversation_id" bson:"conversation_id"`
	SenderId       *primitive.ObjectID `json:"sender_id,omitempty" bson:"sender_id,omitempty"`
	Content        string              `json:"content" bson:"content"`
	Direction      string              `json:"direction" bson:"direction"` // inbound/outbound
	CreateTime     time.Time           `json:"create_time" bson:"create_time"`
}
