package core_api

import "github.com/chathub-im/chathub-core-api/biz/application/dto/basic"

type CreateConversationReq struct {
	Channel   string `json:"channel" vd:"len($)>0"`
	ContactId string `json:"contactId" vd:"len($)>0"`
}

func (r *CreateConversationReq) GetChannel() string   { return r.Channel }
func (r *CreateConversationReq) GetContactId() string { return r.ContactId }

type CreateConversationResp struct {
	Resp         *basic.Response   `json:"-"`
	Conversation *ConversationInfo `json:"conversation"`
}

type ListConversationsReq struct{}

type ListConversationsResp struct {
	Resp          *basic.Response     `json:"-"`
	Conversations []*ConversationInfo `json:"conversations"`
}

type GetConversationReq struct {
	ConversationId string `path:"id"`
}

func (r *GetConversationReq) GetConversationId() string { return r.ConversationId }

type GetConversationResp struct {
	Resp         *basic.Response   `json:"-"`
	Conversation *ConversationInfo `json:"conversation"`
	Messages     []*MessageInfo    `json:"messages"`
}

type ListMessagesReq struct {
	ConversationId string `path:"id"`
}

func (r *ListMessagesReq) GetConversationId() string { return r.ConversationId }

type ListMessagesResp struct {
	Resp     *basic.Response `json:"-"`
	Messages []*MessageInfo  `json:"messages"`
}

type CreateMessageReq struct {
	ConversationId string `path:"id"`
	Content        string `json:"content" vd:"len($)>0"`
}

func (r *CreateMessageReq) GetConversationId() string { return r.ConversationId }
func (r *CreateMessageReq) GetContent() string        { return r.Content }

type CreateMessageResp struct {
	Resp    *basic.Response `json:"-"`
	Message *MessageInfo    `json:"message"`
}

type CreateContactReq struct {
	Name  string `json:"name" vd:"len($)>0"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type CreateContactResp struct {
	Resp    *basic.Response `json:"-"`
	Contact *ContactInfo    `json:"contact"`
}

type ListContactsReq struct{}

type ListContactsResp struct {
	Resp     *basic.Response `json:"-"`
	Contacts []*ContactInfo  `json:"contacts"`
}

type ConversationInfo struct {
	ConversationId     string   `json:"conversation_id"`
	Channel            string   `json:"channel"`
	ContactId          string   `json:"contact_id"`
	Status             string   `json:"status"`
	Participants       []string `json:"participants"`
	LastMessagePreview string   `json:"last_message_preview,omitempty"`
	LastActivityTime   int64    `json:"last_activity_time"`
	CreateTime         int64    `json:"create_time"`
}

type MessageInfo struct {
	MessageId      string `json:"message_id"`
	ConversationId string `json:"conversation_id"`
	SenderId       string `json:"sender_id,omitempty"`
	Content        string `json:"content"`
	Direction      string `json:"direction"`
	CreateTime     int64  `json:"create_time"`
}

type ContactInfo struct {
	ContactId  string `json:"contact_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	CreateTime int64  `json:"create_time"`
}
