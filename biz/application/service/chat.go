package service

import (
	"context"
	"errors"
	"strings"

	"github.com/chathub-im/chathub-core-api/biz/adaptor"
	"github.com/chathub-im/chathub-core-api/biz/application/dto/core_api"
	"github.com/chathub-im/chathub-core-api/biz/domain/gateway"
	"github.com/chathub-im/chathub-core-api/biz/infra/config"
	"github.com/chathub-im/chathub-core-api/biz/infra/cst"
	"github.com/chathub-im/chathub-core-api/biz/infra/mapper/contact"
	"github.com/chathub-im/chathub-core-api/biz/infra/mapper/conversation"
	"github.com/chathub-im/chathub-core-api/biz/infra/mapper/message"
	"github.com/chathub-im/chathub-core-api/biz/infra/mapper/user"
	"github.com/chathub-im/chathub-core-api/biz/infra/util"
	"github.com/chathub-im/chathub-core-api/pkg/ac"
	"github.com/chathub-im/chathub-core-api/pkg/errorx"
	"github.com/chathub-im/chathub-core-api/pkg/logs"
	"github.com/chathub-im/chathub-core-api/types/errno"
	"github.com/google/wire"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type IChatService interface {
	CreateConversation(ctx context.Context, req *core_api.CreateConversationReq) (*core_api.CreateConversationResp, error)
	ListConversations(ctx context.Context, req *core_api.ListConversationsReq) (*core_api.ListConversationsResp, error)
	GetConversation(ctx context.Context, req *core_api.GetConversationReq) (*core_api.GetConversationResp, error)
	ListMessages(ctx context.Context, req *core_api.ListMessagesReq) (*core_api.ListMessagesResp, error)
	CreateMessage(ctx context.Context, req *core_api.CreateMessageReq) (*core_api.CreateMessageResp, error)
	CreateContact(ctx context.Context, req *core_api.CreateContactReq) (*core_api.CreateContactResp, error)
	ListContacts(ctx context.Context, req *core_api.ListContactsReq) (*core_api.ListContactsResp, error)
}

// ChatService 会话/联系人/消息的CRUD, 同时作为网关的会话存储
type ChatService struct {
	Config             *config.Config
	UserMapper         user.MongoMapper
	ContactMapper      contact.MongoMapper
	ConversationMapper conversation.MongoMapper
	MessageMapper      message.MongoMapper
}

var ChatServiceSet = wire.NewSet(
	wire.Struct(new(ChatService), "*"),
	wire.Bind(new(IChatService), new(*ChatService)),
	wire.Bind(new(gateway.ConversationStore), new(*ChatService)),
)

// caller 从请求上下文解出调用者及其组织, 组织id一律服务端推导
func (s *ChatService) caller(ctx context.Context) (uid string, orgId primitive.ObjectID, err error) {
	uid, err = adaptor.ExtractUserId(ctx)
	if err != nil {
		return "", primitive.NilObjectID, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	u, err := s.UserMapper.FindById(ctx, uid)
	if err != nil {
		return "", primitive.NilObjectID, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	return uid, u.OrganizationId, nil
}

// assertConversationAccess 校验会话存在且归属于调用者组织
// 历史数据中organization_id可能缺失, 首次被访问时用访问者的组织补齐;
// 补齐只针对无主会话, 已归属其他组织的会话对外等同于不存在
func (s *ChatService) assertConversationAccess(ctx context.Context, conversationId string, orgId primitive.ObjectID) (*conversation.Conversation, error) {
	conv, err := s.ConversationMapper.FindById(ctx, conversationId)
	if err != nil {
		if errors.Is(err, monc.ErrNotFound) {
			return nil, errorx.New(errno.ConversationNotFoundErrCode)
		}
		return nil, errorx.WrapByCode(err, errno.ConversationGetErrCode)
	}
	switch {
	case conv.OrganizationId.IsZero():
		if err = s.ConversationMapper.SetOrganization(ctx, conv.ID, orgId); err != nil {
			return nil, errorx.WrapByCode(err, errno.ConversationGetErrCode)
		}
		conv.OrganizationId = orgId
	case conv.OrganizationId != orgId:
		return nil, errorx.New(errno.ConversationNotFoundErrCode)
	}
	return conv, nil
}

func (s *ChatService) CreateConversation(ctx context.Context, req *core_api.CreateConversationReq) (*core_api.CreateConversationResp, error) {
	uid, orgId, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	// 联系人必须在本组织内, 无主联系人补齐组织归属
	ct, err := s.ContactMapper.FindById(ctx, req.GetContactId())
	if err != nil {
		if errors.Is(err, monc.ErrNotFound) {
			return nil, errorx.New(errno.ContactNotFoundErrCode)
		}
		return nil, errorx.WrapByCode(err, errno.ConversationCreateErrCode)
	}
	switch {
	case ct.OrganizationId.IsZero():
		if err = s.ContactMapper.SetOrganization(ctx, ct.ID, orgId); err != nil {
			return nil, errorx.WrapByCode(err, errno.ConversationCreateErrCode)
		}
	case ct.OrganizationId != orgId:
		return nil, errorx.New(errno.ContactNotFoundErrCode)
	}

	createdBy, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.OIDErrCode)
	}
	conv, err := s.ConversationMapper.Insert(ctx, &conversation.Conversation{
		Channel:            req.GetChannel(),
		ContactId:          ct.ID,
		OrganizationId:     orgId,
		CreatedBy:          createdBy,
		Participants:       []primitive.ObjectID{createdBy},
		LastMessagePreview: "会话已创建",
	})
	if err != nil {
		logs.CtxErrorf(ctx, "create conversation error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationCreateErrCode)
	}
	return &core_api.CreateConversationResp{Resp: util.Success(), Conversation: conversationInfo(conv)}, nil
}

func (s *ChatService) ListConversations(ctx context.Context, _ *core_api.ListConversationsReq) (*core_api.ListConversationsResp, error) {
	_, orgId, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	convs, err := s.ConversationMapper.ListByOrganization(ctx, orgId)
	if err != nil {
		logs.CtxErrorf(ctx, "list conversations error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ConversationListErrCode)
	}
	items := make([]*core_api.ConversationInfo, len(convs))
	for i, conv := range convs {
		items[i] = conversationInfo(conv)
	}
	return &core_api.ListConversationsResp{Resp: util.Success(), Conversations: items}, nil
}

func (s *ChatService) GetConversation(ctx context.Context, req *core_api.GetConversationReq) (*core_api.GetConversationResp, error) {
	_, orgId, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	conv, err := s.assertConversationAccess(ctx, req.GetConversationId(), orgId)
	if err != nil {
		return nil, err
	}
	msgs, err := s.MessageMapper.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ConversationGetErrCode)
	}
	return &core_api.GetConversationResp{
		Resp:         util.Success(),
		Conversation: conversationInfo(conv),
		Messages:     messageInfos(msgs),
	}, nil
}

func (s *ChatService) ListMessages(ctx context.Context, req *core_api.ListMessagesReq) (*core_api.ListMessagesResp, error) {
	_, orgId, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	msgs, err := s.messagesForConversation(ctx, req.GetConversationId(), orgId)
	if err != nil {
		return nil, err
	}
	return &core_api.ListMessagesResp{Resp: util.Success(), Messages: messageInfos(msgs)}, nil
}

func (s *ChatService) CreateMessage(ctx context.Context, req *core_api.CreateMessageReq) (*core_api.CreateMessageResp, error) {
	uid, orgId, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	sender, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.OIDErrCode)
	}
	msg, err := s.appendMessage(ctx, req.GetContent(), &sender, req.GetConversationId(), cst.DirectionOutbound, orgId)
	if err != nil {
		return nil, err
	}
	return &core_api.CreateMessageResp{Resp: util.Success(), Message: messageInfo(msg)}, nil
}

func (s *ChatService) CreateContact(ctx context.Context, req *core_api.CreateContactReq) (*core_api.CreateContactResp, error) {
	uid, orgId, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	createdBy, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.OIDErrCode)
	}
	ct, err := s.ContactMapper.Insert(ctx, &contact.Contact{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		OrganizationId: orgId,
		CreatedBy:      createdBy,
	})
	if err != nil {
		logs.CtxErrorf(ctx, "create contact error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ContactCreateErrCode)
	}
	return &core_api.CreateContactResp{Resp: util.Success(), Contact: contactInfo(ct)}, nil
}

func (s *ChatService) ListContacts(ctx context.Context, _ *core_api.ListContactsReq) (*core_api.ListContactsResp, error) {
	_, orgId, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	cts, err := s.ContactMapper.ListByOrganization(ctx, orgId)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ContactListErrCode)
	}
	items := make([]*core_api.ContactInfo, len(cts))
	for i, ct := range cts {
		items[i] = contactInfo(ct)
	}
	return &core_api.ListContactsResp{Resp: util.Success(), Contacts: items}, nil
}

// MessagesForConversation 实现gateway.ConversationStore
func (s *ChatService) MessagesForConversation(ctx context.Context, conversationId, organizationId string) ([]*message.Message, error) {
	orgId, err := primitive.ObjectIDFromHex(organizationId)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.OIDErrCode)
	}
	return s.messagesForConversation(ctx, conversationId, orgId)
}

// AppendMessage 实现gateway.ConversationStore, inbound消息sender为nil
func (s *ChatService) AppendMessage(ctx context.Context, content string, sender *gateway.Identity, conversationId, direction, organizationId string) (*message.Message, error) {
	orgId, err := primitive.ObjectIDFromHex(organizationId)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.OIDErrCode)
	}
	var senderId *primitive.ObjectID
	if sender != nil {
		oid, err := primitive.ObjectIDFromHex(sender.UserId)
		if err != nil {
			return nil, errorx.WrapByCode(err, errno.OIDErrCode)
		}
		senderId = &oid
	}
	return s.appendMessage(ctx, content, senderId, conversationId, direction, orgId)
}

func (s *ChatService) messagesForConversation(ctx context.Context, conversationId string, orgId primitive.ObjectID) ([]*message.Message, error) {
	conv, err := s.assertConversationAccess(ctx, conversationId, orgId)
	if err != nil {
		return nil, err
	}
	msgs, err := s.MessageMapper.ListByConversation(ctx, conv.ID)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.MessageListErrCode)
	}
	return msgs, nil
}

// appendMessage 消息写入的公共路径: 外发内容先过敏感词, 再校验会话归属, 落库并刷新会话
func (s *ChatService) appendMessage(ctx context.Context, content string, senderId *primitive.ObjectID, conversationId, direction string, orgId primitive.ObjectID) (*message.Message, error) {
	if direction == cst.DirectionOutbound {
		if hit, words := ac.AcSearch(content, s.Config.Moderation.Words, false); hit {
			return nil, errorx.New(errno.MessageBlockedErrCode, errorx.KV("words", strings.Join(words, ",")))
		}
	}
	conv, err := s.assertConversationAccess(ctx, conversationId, orgId)
	if err != nil {
		return nil, err
	}
	msg, err := s.MessageMapper.Insert(ctx, &message.Message{
		ConversationId: conv.ID,
		SenderId:       senderId,
		Content:        content,
		Direction:      direction,
	})
	if err != nil {
		logs.CtxErrorf(ctx, "insert message error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.MessageCreateErrCode)
	}
	if err = s.ConversationMapper.AppendMessage(ctx, conv.ID, msg.ID, util.Truncate(content, cst.PreviewLimit), senderId); err != nil {
		// 消息本身已落库, 会话元数据刷新失败只记录
		logs.CtxErrorf(ctx, "update conversation after message error: %s", errorx.ErrorWithoutStack(err))
	}
	return msg, nil
}

func conversationInfo(conv *conversation.Conversation) *core_api.ConversationInfo {
	participants := make([]string, len(conv.Participants))
	for i, p := range conv.Participants {
		participants[i] = p.Hex()
	}
	return &core_api.ConversationInfo{
		ConversationId:     conv.ID.Hex(),
		Channel:            conv.Channel,
		ContactId:          conv.ContactId.Hex(),
		Status:             conv.Status,
		Participants:       participants,
		LastMessagePreview: conv.LastMessagePreview,
		LastActivityTime:   conv.LastActivityTime.Unix(),
		CreateTime:         conv.CreateTime.Unix(),
	}
}

func messageInfo(msg *message.Message) *core_api.MessageInfo {
	info := &core_api.MessageInfo{
		MessageId:      msg.ID.Hex(),
		ConversationId: msg.ConversationId.Hex(),
		Content:        msg.Content,
		Direction:      msg.Direction,
		CreateTime:     msg.CreateTime.Unix(),
	}
	if msg.SenderId != nil {
		info.SenderId = msg.SenderId.Hex()
	}
	return info
}

func messageInfos(msgs []*message.Message) []*core_api.MessageInfo {
	items := make([]*core_api.MessageInfo, len(msgs))
	for i, msg := range msgs {
		items[i] = messageInfo(msg)
	}
	return items
}

func contactInfo(ct *contact.Contact) *core_api.ContactInfo {
	return &core_api.ContactInfo{
		ContactId:  ct.ID.Hex(),
		Name:       ct.Name,
		Phone:      ct.Phone,
		Email:      ct.Email,
		CreateTime: ct.CreateTime.Unix(),
	}
}
