package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/chathub-im/chathub-core-api/biz/adaptor"
	"github.com/chathub-im/chathub-core-api/biz/application/dto/core_api"
	"github.com/chathub-im/chathub-core-api/biz/domain/gateway"
	"github.com/chathub-im/chathub-core-api/biz/infra/config"
	"github.com/chathub-im/chathub-core-api/biz/infra/cst"
	"github.com/chathub-im/chathub-core-api/biz/infra/mapper/organization"
	"github.com/chathub-im/chathub-core-api/biz/infra/mapper/user"
	"github.com/chathub-im/chathub-core-api/biz/infra/util"
	"github.com/chathub-im/chathub-core-api/pkg/errorx"
	"github.com/chathub-im/chathub-core-api/pkg/logs"
	"github.com/chathub-im/chathub-core-api/types/errno"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/wire"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *core_api.RegisterReq) (*core_api.RegisterResp, error)
	Login(ctx context.Context, req *core_api.LoginReq) (*core_api.LoginResp, error)
	Profile(ctx context.Context, req *core_api.ProfileReq) (*core_api.ProfileResp, error)
	ListOrganizations(ctx context.Context, req *core_api.ListOrganizationsReq) (*core_api.ListOrganizationsResp, error)
	GetOrganization(ctx context.Context, req *core_api.GetOrganizationReq) (*core_api.GetOrganizationResp, error)
	VerifyToken(ctx context.Context, token string) (*gateway.Identity, error)
}

type AuthService struct {
	Config             *config.Config
	UserMapper         user.MongoMapper
	OrganizationMapper organization.MongoMapper
}

var AuthServiceSet = wire.NewSet(
	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),
	wire.Bind(new(gateway.TokenValidator), new(*AuthService)),
)

func (s *AuthService) Register(ctx context.Context, req *core_api.RegisterReq) (*core_api.RegisterResp, error) {
	// 用户名/邮箱唯一性
	exist, err := s.UserMapper.ExistUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ErrRegister)
	}
	if exist {
		return nil, errorx.New(errno.ErrUserConflict)
	}

	// 加入已有组织或创建新组织
	var org *organization.Organization
	role := cst.RoleAgent
	switch {
	case req.OrganizationId != "":
		if org, err = s.OrganizationMapper.FindById(ctx, req.OrganizationId); err != nil {
			if errors.Is(err, monc.ErrNotFound) {
				return nil, errorx.New(errno.ErrOrgNotFound)
			}
			return nil, errorx.WrapByCode(err, errno.ErrRegister)
		}
		if req.Role != "" {
			role = req.Role
		}
	case req.OrganizationName != "":
		slug := req.OrganizationSlug
		if strings.TrimSpace(slug) == "" {
			slug = req.OrganizationName
		}
		slug = Slugify(slug)
		if exist, err = s.OrganizationMapper.ExistSlug(ctx, slug); err != nil {
			return nil, errorx.WrapByCode(err, errno.ErrRegister)
		} else if exist {
			return nil, errorx.New(errno.ErrOrgSlugConflict)
		}
		org = &organization.Organization{
			Name:           req.OrganizationName,
			Slug:           slug,
			PrimaryColor:   "#255FED",
			SecondaryColor: "#E91E63",
		}
		if org, err = s.OrganizationMapper.Insert(ctx, org); err != nil {
			return nil, errorx.WrapByCode(err, errno.ErrRegister)
		}
		// 新组织的创建者是owner
		role = cst.RoleOwner
	default:
		return nil, errorx.New(errno.ErrOrgRequired)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ErrRegister)
	}
	u := &user.User{
		Username:       req.Username,
		Email:          req.Email,
		DisplayName:    req.DisplayName,
		Password:       string(hashed),
		OrganizationId: org.ID,
		Role:           role,
		AvatarColor:    AvatarColor(req.DisplayName),
	}
	if u, err = s.UserMapper.Insert(ctx, u); err != nil {
		logs.CtxErrorf(ctx, "insert user error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ErrRegister)
	}

	return &core_api.RegisterResp{Resp: util.Success(), User: userInfo(u, org)}, nil
}

func (s *AuthService) Login(ctx context.Context, req *core_api.LoginReq) (*core_api.LoginResp, error) {
	u, err := s.UserMapper.FindByUsername(ctx, req.Username)
	if err != nil {
		// 用户不存在与密码错误对外不区分
		if errors.Is(err, monc.ErrNotFound) {
			return nil, errorx.New(errno.ErrLogin)
		}
		return nil, errorx.WrapByCode(err, errno.ErrLogin)
	}
	if err = bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, errorx.New(errno.ErrLogin)
	}

	org, err := s.OrganizationMapper.FindById(ctx, u.OrganizationId.Hex())
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ErrLogin)
	}

	token, err := s.signToken(u)
	if err != nil {
		logs.CtxErrorf(ctx, "sign token error: %s", errorx.ErrorWithoutStack(err))
		return nil, errorx.WrapByCode(err, errno.ErrLogin)
	}
	return &core_api.LoginResp{Resp: util.Success(), AccessToken: token, User: userInfo(u, org)}, nil
}

func (s *AuthService) Profile(ctx context.Context, _ *core_api.ProfileReq) (*core_api.ProfileResp, error) {
	uid, err := adaptor.ExtractUserId(ctx)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	u, err := s.UserMapper.FindById(ctx, uid)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ErrGetProfile)
	}
	org, err := s.OrganizationMapper.FindById(ctx, u.OrganizationId.Hex())
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ErrGetProfile)
	}
	return &core_api.ProfileResp{Resp: util.Success(), User: userInfo(u, org)}, nil
}

func (s *AuthService) ListOrganizations(ctx context.Context, _ *core_api.ListOrganizationsReq) (*core_api.ListOrganizationsResp, error) {
	orgs, err := s.OrganizationMapper.ListAll(ctx)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.ErrListOrganization)
	}
	items := make([]*core_api.OrganizationInfo, len(orgs))
	for i, org := range orgs {
		items[i] = orgInfo(org)
	}
	return &core_api.ListOrganizationsResp{Resp: util.Success(), Organizations: items}, nil
}

func (s *AuthService) GetOrganization(ctx context.Context, req *core_api.GetOrganizationReq) (*core_api.GetOrganizationResp, error) {
	org, err := s.OrganizationMapper.FindBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, monc.ErrNotFound) {
			return nil, errorx.New(errno.ErrOrgNotFound)
		}
		return nil, errorx.WrapByCode(err, errno.ErrListOrganization)
	}
	return &core_api.GetOrganizationResp{Resp: util.Success(), Organization: orgInfo(org)}, nil
}

// VerifyToken 网关握手时的令牌校验: 解析JWT, 加载用户与组织, 产出带规范化租户id的身份
// 之后连接存续期间不再复查, 令牌过期不会断开已建立的连接
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*gateway.Identity, error) {
	if tokenString == "" {
		return nil, errorx.New(errno.UnAuthErrCode)
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.Config.Auth.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errorx.New(errno.UnAuthErrCode)
	}
	uid, _ := claims["userId"].(string)
	if uid == "" {
		return nil, errorx.New(errno.UnAuthErrCode)
	}
	u, err := s.UserMapper.FindById(ctx, uid)
	if err != nil {
		return nil, errorx.WrapByCode(err, errno.UnAuthErrCode)
	}
	return &gateway.Identity{
		UserId:         u.ID.Hex(),
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		Role:           u.Role,
		AvatarColor:    u.AvatarColor,
		OrganizationId: u.OrganizationId.Hex(),
	}, nil
}

func (s *AuthService) signToken(u *user.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId":   u.ID.Hex(),
		"username": u.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(time.Duration(s.Config.Auth.AccessExpire) * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.Config.Auth.SecretKey))
}

func userInfo(u *user.User, org *organization.Organization) *core_api.UserInfo {
	info := &core_api.UserInfo{
		UserId:      u.ID.Hex(),
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		AvatarColor: u.AvatarColor,
	}
	if org != nil {
		info.Organization = orgInfo(org)
	}
	return info
}

func orgInfo(org *organization.Organization) *core_api.OrganizationInfo {
	return &core_api.OrganizationInfo{
		OrganizationId: org.ID.Hex(),
		Slug:           org.Slug,
		Name:           org.Name,
		PrimaryColor:   org.PrimaryColor,
		SecondaryColor: org.SecondaryColor,
	}
}

// Slugify 将组织名归一化为slug: 小写, 非字母数字折叠为'-', 去掉首尾'-'
func Slugify(value string) string {
	var b strings.Builder
	lastDash := true // 抑制开头的'-'
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// AvatarColor 由显示名确定性地生成头像颜色
func AvatarColor(seed string) string {
	var hash int32
	for _, r := range seed {
		hash = int32(r) + ((hash << 5) - hash)
	}
	const hex = "0123456789ABCDEF"
	v := uint32(hash) & 0xFFFFFF
	out := []byte{'#', '0', '0', '0', '0', '0', '0'}
	for i := 6; i >= 1; i-- {
		out[i] = hex[v&0xF]
		v >>= 4
	}
	return string(out)
}
