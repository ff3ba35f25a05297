package errno

import "github.com/chathub-im/chathub-core-api/pkg/errorx/code"

const (
	ErrLogin            = 100_000_001
	ErrRegister         = 100_000_002
	ErrUserConflict     = 100_000_003
	ErrOrgNotFound      = 100_000_004
	ErrOrgSlugConflict  = 100_000_005
	ErrOrgRequired      = 100_000_006
	ErrGetProfile       = 100_000_007
	ErrListOrganization = 100_000_008
)

func init() {
	code.Register(
		ErrLogin,
		"登录失败",
		code.WithAffectStability(false),
	)
	code.Register(
		ErrRegister,
		"注册失败",
		code.WithAffectStability(false),
	)
	code.Register(
		ErrUserConflict,
		"用户名或邮箱已存在",
		code.WithAffectStability(false),
	)
	code.Register(
		ErrOrgNotFound,
		"组织不存在",
		code.WithAffectStability(false),
	)
	code.Register(
		ErrOrgSlugConflict,
		"组织slug已被占用, 换个名称试试",
		code.WithAffectStability(false),
	)
	code.Register(
		ErrOrgRequired,
		"需要提供organizationId加入组织, 或organizationName创建新组织",
		code.WithAffectStability(false),
	)
	code.Register(
		ErrGetProfile,
		"获取用户信息失败",
		code.WithAffectStability(false),
	)
	code.Register(
		ErrListOrganization,
		"获取组织列表失败",
		code.WithAffectStability(false),
	)
}
