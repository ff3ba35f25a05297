package storage

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/chathub-im/chathub-core-api/biz/infra/config"
	"github.com/chathub-im/chathub-core-api/biz/infra/util"
	"github.com/chathub-im/chathub-core-api/biz/infra/util/httpx"
	"github.com/tencentyun/cos-go-sdk-v5"
)

var _ COS = (*cosClient)(nil)

// COS 对象存储, 聊天附件走预签名直传
type COS interface {
	Upload(ctx context.Context, key string, r io.Reader, opt *cos.ObjectPutOptions) (*cos.Response, error)
	GenPresignURL(ctx context.Context, key string, opt *cos.PresignedURLOptions) (string, error)
	GetPermanentAccessURL(key string) string
}

type cosClient struct {
	Conf   *config.COS
	Client *cos.Client
}

func NewCOS(c *config.Config) COS {
	return newcosClient(c)
}

// Upload 服务端直接上传对象
// key 对象键, 约定为 {user_id}/{prefix}/时间戳
// opt 上传配置, 允许为空
func (c *cosClient) Upload(ctx context.Context, key string, r io.Reader, opt *cos.ObjectPutOptions) (*cos.Response, error) {
	if opt == nil {
		opt = &cos.ObjectPutOptions{}
	}
	return c.Client.Object.Put(ctx, key, r, opt)
}

// GenPresignURL 生成短期有效的PUT预签名url, 由前端完成实际上传
func (c *cosClient) GenPresignURL(ctx context.Context, key string, opt *cos.PresignedURLOptions) (string, error) {
	if opt == nil {
		opt = &cos.PresignedURLOptions{}
	}
	u, err := c.Client.Object.GetPresignedURL2(ctx, http.MethodPut, key,
		time.Minute, // 1分钟内过期
		opt,
	)
	if err != nil || u == nil {
		return "", err
	}
	return u.String(), nil
}

func (c *cosClient) GetPermanentAccessURL(key string) string {
	return c.Client.Object.GetObjectURL(key).String()
}

func newcosClient(c *config.Config) *cosClient {
	b := &cos.BaseURL{
		BucketURL: util.Str2URL(c.COS.BucketURL),
	}
	client := cos.NewClient(b, mustNewCOSHTTPClient(c))
	return &cosClient{
		Conf:   &c.COS,
		Client: client,
	}
}

func mustNewCOSHTTPClient(c *config.Config) *http.Client {
	// 与全局单例http客户端采用不同transport, 单独为cos创建新http客户端实例
	gCli := httpx.GetHttpClient()

	authTransport := &cos.AuthorizationTransport{
		SecretID:  c.COS.SecretID,
		SecretKey: c.COS.SecretKey,
		Transport: gCli.Client.Transport,
	}

	return &http.Client{
		Transport: authTransport,
	}
}
