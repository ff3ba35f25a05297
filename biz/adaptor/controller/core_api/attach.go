package core_api

import (
	"context"

	"github.com/chathub-im/chathub-core-api/biz/adaptor"
	"github.com/chathub-im/chathub-core-api/biz/application/dto/core_api"
	"github.com/chathub-im/chathub-core-api/provider"
	"github.com/cloudwego/hertz/pkg/app"
)

// GenSignedURL 生成附件直传的预签名url
// @router /attach/signed_url [POST]
func GenSignedURL(ctx context.Context, c *app.RequestContext) {
	var err error
	var req core_api.GenSignedURLReq
	if err = c.BindAndValidate(&req); err != nil {
		adaptor.PostError(ctx, c, err)
		return
	}
	resp, err := provider.Get().AttachService.GenSignedURL(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
