package core_api

import (
	"context"

	"github.com/chathub-im/chathub-core-api/biz/adaptor"
	"github.com/chathub-im/chathub-core-api/biz/application/dto/core_api"
	"github.com/chathub-im/chathub-core-api/provider"
	"github.com/cloudwego/hertz/pkg/app"
)

// CreateConversation 创建会话
// @router /chat/conversations [POST]
func CreateConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.CreateConversationReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().ChatService.CreateConversation(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListConversations 本组织会话列表
// @router /chat/conversations [GET]
func ListConversations(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ListConversationsReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().ChatService.ListConversations(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetConversation 会话详情及全部消息
// @router /chat/conversations/:id [GET]
func GetConversation(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.GetConversationReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().ChatService.GetConversation(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListMessages 会话消息, 按创建时间升序
// @router /chat/conversations/:id/messages [GET]
func ListMessages(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ListMessagesReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().ChatService.ListMessages(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// CreateMessage REST方式发消息, 不经过网关扇出
// @router /chat/conversations/:id/messages [POST]
func CreateMessage(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.CreateMessageReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().ChatService.CreateMessage(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// CreateContact 创建联系人
// @router /chat/contacts [POST]
func CreateContact(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.CreateContactReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().ChatService.CreateContact(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListContacts 本组织联系人列表
// @router /chat/contacts [GET]
func ListContacts(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ListContactsReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().ChatService.ListContacts(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
