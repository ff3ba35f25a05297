package router

import (
	"context"

	"github.com/chathub-im/chathub-core-api/biz/adaptor"
	"github.com/chathub-im/chathub-core-api/biz/adaptor/controller/core_api"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
)

// Register 注册全部路由
// 统一中间件把hertz的RequestContext注入标准context, 业务层从中解出调用者身份
func Register(h *server.Hertz) {
	h.Use(func(ctx context.Context, c *app.RequestContext) {
		c.Next(adaptor.InjectContext(ctx, c))
	})

	auth := h.Group("/auth")
	auth.POST("/register", core_api.Register)
	auth.POST("/login", core_api.Login)
	auth.GET("/profile", core_api.Profile)
	auth.GET("/organizations", core_api.ListOrganizations)
	auth.GET("/organizations/:slug", core_api.GetOrganization)

	chat := h.Group("/chat")
	chat.GET("/ws", core_api.ChatWs)
	chat.POST("/conversations", core_api.CreateConversation)
	chat.GET("/conversations", core_api.ListConversations)
	chat.GET("/conversations/:id", core_api.GetConversation)
	chat.GET("/conversations/:id/messages", core_api.ListMessages)
	chat.POST("/conversations/:id/messages", core_api.CreateMessage)
	chat.POST("/contacts", core_api.CreateContact)
	chat.GET("/contacts", core_api.ListContacts)

	attach := h.Group("/attach")
	attach.POST("/signed_url", core_api.GenSignedURL)
}
