package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chathub-im/chathub-core-api/biz/adaptor"
	"github.com/chathub-im/chathub-core-api/biz/application/dto/core_api"
	"github.com/chathub-im/chathub-core-api/biz/infra/config"
	"github.com/chathub-im/chathub-core-api/biz/infra/storage"
	"github.com/chathub-im/chathub-core-api/biz/infra/util"
	"github.com/chathub-im/chathub-core-api/pkg/errorx"
	"github.com/chathub-im/chathub-core-api/pkg/logs"
	"github.com/chathub-im/chathub-core-api/types/errno"
	"github.com/google/wire"
)

type IAttachService interface {
	GenSignedURL(ctx context.Context, req *core_api.GenSignedURLReq) (*core_api.GenSignedURLResp, error)
}

// AttachService 聊天附件上传, 前端拿预签名url直传对象存储
type AttachService struct {
	Config *config.Config
	COS    storage.COS
}

var AttachServiceSet = wire.NewSet(
	wire.Struct(new(AttachService), "*"),
	wire.Bind(new(IAttachService), new(*AttachService)),
)

func (s *AttachService) GenSignedURL(ctx context.Context, req *core_api.GenSignedURLReq) (*core_api.GenSignedURLResp, error) {
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}

	// 对象键按调用者隔离, 时间戳避免覆盖
	key := fmt.Sprintf("%s/%s/%d", uid, req.GetPrefix(), time.Now().UnixMilli())
	signed, err := s.COS.GenPresignURL(ctx, key, nil)
	if err != nil {
		logs.CtxErrorf(ctx, "gen presigned url error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.AttachUploadErrCode)
	}

	accessURL := s.COS.GetPermanentAccessURL(key)
	if s.Config.COS.CDN != "" {
		accessURL = util.SignedCOS2CDN(signed, s.Config.COS.CDN)
	}
	return &core_api.GenSignedURLResp{
		Resp:         util.Success(),
		PresignedURL: signed,
		AccessURL:    accessURL,
	}, nil
}
