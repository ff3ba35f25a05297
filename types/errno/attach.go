package errno

import "github.com/chathub-im/chathub-core-api/pkg/errorx/code"

const (
	AttachUploadErrCode = 40001
)

func init() {
	code.Register(
		AttachUploadErrCode,
		"获取上传链接失败",
		code.WithAffectStability(false),
	)
}
