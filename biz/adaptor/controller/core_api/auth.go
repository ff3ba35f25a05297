package core_api

import (
	"context"

	"github.com/chathub-im/chathub-core-api/biz/adaptor"
	"github.com/chathub-im/chathub-core-api/biz/application/dto/core_api"
	"github.com/chathub-im/chathub-core-api/provider"
	"github.com/cloudwego/hertz/pkg/app"
)

// Register 注册用户, 同时创建或加入组织
// @router /auth/register [POST]
func Register(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.RegisterReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().AuthService.Register(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Login 登录换取access token
// @router /auth/login [POST]
func Login(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.LoginReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().AuthService.Login(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Profile 当前用户信息
// @router /auth/profile [GET]
func Profile(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ProfileReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().AuthService.Profile(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListOrganizations 组织列表
// @router /auth/organizations [GET]
func ListOrganizations(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.ListOrganizationsReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().AuthService.ListOrganizations(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetOrganization 按slug查组织
// @router /auth/organizations/:slug [GET]
func GetOrganization(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.GetOrganizationReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().AuthService.GetOrganization(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
