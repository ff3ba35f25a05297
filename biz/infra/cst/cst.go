package cst

// 消息方向
const (
	// DirectionInbound 来自外部渠道的消息, 没有坐席发送者
	DirectionInbound = "inbound"
	// DirectionOutbound 坐席发出的消息
	DirectionOutbound = "outbound"
)

// 会话状态
const (
	ConversationOpen     = "open"
	ConversationPending  = "pending"
	ConversationResolved = "resolved"
)

// 会话渠道
const (
	ChannelWhatsApp = "WhatsApp"
	ChannelWebChat  = "Web Chat"
	ChannelSMS      = "SMS"
)

// 用户角色
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
	RoleAgent = "agent"
)

// websocket事件类型
const (
	// EventJoinConversation 客户端请求订阅某个会话
	EventJoinConversation = "joinConversation"
	// EventLeaveConversation 客户端取消订阅
	EventLeaveConversation = "leaveConversation"
	// EventSendMessage 客户端发送消息
	EventSendMessage = "sendMessage"
	// EventMessageHistory 服务端下发会话历史
	EventMessageHistory = "messageHistory"
	// EventReceiveMessage 服务端广播新消息
	EventReceiveMessage = "receiveMessage"
	// EventError 服务端下发错误描述
	EventError = "error"
)

// mapper层字段枚举
const (
	Id             = "_id"
	ConversationId = "conversation_id"
	OrganizationId = "organization_id"
	ContactId      = "contact_id"
	SenderId       = "sender_id"
	CreatedBy      = "created_by"
	Participants   = "participants"
	Messages       = "messages"
	Username       = "username"
	Email          = "email"
	Slug           = "slug"
	Name           = "name"
	Channel        = "channel"
	Direction      = "direction"
	Content        = "content"

	LastMessagePreview = "last_message_preview"
	LastActivityTime   = "last_activity_time"
	CreateTime         = "create_time"
	UpdateTime         = "update_time"

	Status = "status"

	Set      = "$set"
	Push     = "$push"
	AddToSet = "$addToSet"
	NE       = "$ne"
)

// PreviewLimit 会话预览截取的最大字符数
const PreviewLimit = 140
