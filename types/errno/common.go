package errno

import (
	"github.com/chathub-im/chathub-core-api/pkg/errorx/code"
)

const (
	UnAuthErrCode      = 1000
	UnImplementErrCode = 888
	OIDErrCode         = 777
)

func init() {
	code.Register(
		UnAuthErrCode,
		"身份认证失败",
		code.WithAffectStability(false),
	)
	code.Register(
		UnImplementErrCode,
		"功能暂未实现",
		code.WithAffectStability(true),
	)
	code.Register(
		OIDErrCode,
		"无效的对象id",
		code.WithAffectStability(false),
	)
}
