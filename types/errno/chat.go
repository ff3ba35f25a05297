package errno

import "github.com/chathub-im/chathub-core-api/pkg/errorx/code"

const (
	ConversationCreateErrCode   = 30001
	ConversationListErrCode     = 30002
	ConversationGetErrCode      = 30003
	ConversationNotFoundErrCode = 30004
	MessageListErrCode          = 30005
	MessageCreateErrCode        = 30006
	MessageBlockedErrCode       = 30007
	ContactCreateErrCode        = 30008
	ContactListErrCode          = 30009
	ContactNotFoundErrCode      = 30010
)

func init() {
	code.Register(
		ConversationCreateErrCode,
		"创建会话失败",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationListErrCode,
		"获取会话列表失败",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationGetErrCode,
		"获取会话失败",
		code.WithAffectStability(false),
	)
	code.Register(
		ConversationNotFoundErrCode,
		"会话不存在",
		code.WithAffectStability(false),
	)
	code.Register(
		MessageListErrCode,
		"获取会话消息失败",
		code.WithAffectStability(false),
	)
	code.Register(
		MessageCreateErrCode,
		"发送消息失败",
		code.WithAffectStability(false),
	)
	code.Register(
		MessageBlockedErrCode,
		"消息包含违规内容: {words}",
		code.WithAffectStability(false),
	)
	code.Register(
		ContactCreateErrCode,
		"创建联系人失败",
		code.WithAffectStability(false),
	)
	code.Register(
		ContactListErrCode,
		"获取联系人列表失败",
		code.WithAffectStability(false),
	)
	code.Register(
		ContactNotFoundErrCode,
		"联系人不存在",
		code.WithAffectStability(false),
	)
}
