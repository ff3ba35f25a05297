package service

import (
	"context"
	"testing"

	"github.com/chathub-im/chathub-core-api/biz/application/dto/core_api"
	"github.com/chathub-im/chathub-core-api/biz/infra/config"
	"github.com/chathub-im/chathub-core-api/biz/infra/cst"
	"github.com/chathub-im/chathub-core-api/biz/infra/mapper/organization"
	"github.com/chathub-im/chathub-core-api/biz/infra/mapper/user"
	"github.com/chathub-im/chathub-core-api/pkg/errorx"
	"github.com/chathub-im/chathub-core-api/types/errno"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type stubUserMapper struct {
	users map[string]*user.User
}

func (s *stubUserMapper) Insert(_ context.Context, u *user.User) (*user.User, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID.Hex()] = u
	return u, nil
}

func (s *stubUserMapper) FindById(_ context.Context, id string) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, monc.ErrNotFound
	}
	return u, nil
}

func (s *stubUserMapper) FindByUsername(_ context.Context, username string) (*user.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, monc.ErrNotFound
}

func (s *stubUserMapper) ExistUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type stubOrgMapper struct {
	orgs map[string]*organization.Organization
}

func (s *stubOrgMapper) Insert(_ context.Context, org *organization.Organization) (*organization.Organization, error) {
	if org.ID.IsZero() {
		org.ID = primitive.NewObjectID()
	}
	s.orgs[org.ID.Hex()] = org
	return org, nil
}

func (s *stubOrgMapper) FindById(_ context.Context, id string) (*organization.Organization, error) {
	org, ok := s.orgs[id]
	if !ok {
		return nil, monc.ErrNotFound
	}
	return org, nil
}

func (s *stubOrgMapper) FindBySlug(_ context.Context, slug string) (*organization.Organization, error) {
	for _, org := range s.orgs {
		if org.Slug == slug {
			return org, nil
		}
	}
	return nil, monc.ErrNotFound
}

func (s *stubOrgMapper) ExistSlug(_ context.Context, slug string) (bool, error) {
	for _, org := range s.orgs {
		if org.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubOrgMapper) ListAll(_ context.Context) ([]*organization.Organization, error) {
	out := make([]*organization.Organization, 0, len(s.orgs))
	for _, org := range s.orgs {
		out = append(out, org)
	}
	return out, nil
}

func newTestAuthService() (*AuthService, *stubUserMapper, *stubOrgMapper) {
	users := &stubUserMapper{users: map[string]*user.User{}}
	orgs := &stubOrgMapper{orgs: map[string]*organization.Organization{}}
	svc := &AuthService{
		Config: &config.Config{
			Auth: config.Auth{SecretKey: "test-secret", AccessExpire: 3600},
		},
		UserMapper:         users,
		OrganizationMapper: orgs,
	}
	return svc, users, orgs
}

func statusCode(t *testing.T, err error) int32 {
	t.Helper()
	var se errorx.StatusError
	require.ErrorAs(t, err, &se)
	return se.Code()
}

func TestRegister_CreatesOrganization(t *testing.T) {
	req := require.New(t)
	svc, _, orgs := newTestAuthService()

	resp, err := svc.Register(context.Background(), &core_api.RegisterReq{
		Username:         "alice",
		DisplayName:      "Alice",
		Email:            "alice@example.com",
		Password:         "secret",
		OrganizationName: "Acme Corp",
	})
	req.NoError(err)
	req.Equal("alice", resp.User.Username)
	// 新组织的创建者是owner
	req.Equal(cst.RoleOwner, resp.User.Role)
	req.Equal("acme-corp", resp.User.Organization.Slug)
	req.Len(orgs.orgs, 1)
	req.NotEmpty(resp.User.AvatarColor)
}

func TestRegister_JoinsExistingOrganization(t *testing.T) {
	req := require.New(t)
	svc, _, orgs := newTestAuthService()
	org, err := orgs.Insert(context.Background(), &organization.Organization{Name: "Acme", Slug: "acme"})
	req.NoError(err)

	resp, err := svc.Register(context.Background(), &core_api.RegisterReq{
		Username:       "bob",
		DisplayName:    "Bob",
		Email:          "bob@example.com",
		Password:       "secret",
		OrganizationId: org.ID.Hex(),
	})
	req.NoError(err)
	// 未指定角色时默认agent
	req.Equal(cst.RoleAgent, resp.User.Role)
	req.Equal(org.ID.Hex(), resp.User.Organization.OrganizationId)
}

func TestRegister_Conflicts(t *testing.T) {
	req := require.New(t)
	svc, _, _ := newTestAuthService()

	first := &core_api.RegisterReq{
		Username: "alice", DisplayName: "Alice", Email: "alice@example.com",
		Password: "secret", OrganizationName: "Acme",
	}
	_, err := svc.Register(context.Background(), first)
	req.NoError(err)

	// 用户名重复
	_, err = svc.Register(context.Background(), &core_api.RegisterReq{
		Username: "alice", DisplayName: "A2", Email: "a2@example.com",
		Password: "secret", OrganizationName: "Other",
	})
	req.Equal(int32(errno.ErrUserConflict), statusCode(t, err))

	// slug重复
	_, err = svc.Register(context.Background(), &core_api.RegisterReq{
		Username: "carol", DisplayName: "Carol", Email: "carol@example.com",
		Password: "secret", OrganizationName: "Acme",
	})
	req.Equal(int32(errno.ErrOrgSlugConflict), statusCode(t, err))

	// 既不加入也不创建组织
	_, err = svc.Register(context.Background(), &core_api.RegisterReq{
		Username: "dave", DisplayName: "Dave", Email: "dave@example.com", Password: "secret",
	})
	req.Equal(int32(errno.ErrOrgRequired), statusCode(t, err))
}

func TestLogin(t *testing.T) {
	req := require.New(t)
	svc, users, orgs := newTestAuthService()
	org, err := orgs.Insert(context.Background(), &organization.Organization{Name: "Acme", Slug: "acme"})
	req.NoError(err)
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), 10)
	req.NoError(err)
	_, err = users.Insert(context.Background(), &user.User{
		Username: "alice", Password: string(hashed), OrganizationId: org.ID,
	})
	req.NoError(err)

	resp, err := svc.Login(context.Background(), &core_api.LoginReq{Username: "alice", Password: "secret"})
	req.NoError(err)
	req.NotEmpty(resp.AccessToken)
	req.Equal("alice", resp.User.Username)

	// 密码错误与用户不存在返回相同错误码
	_, err = svc.Login(context.Background(), &core_api.LoginReq{Username: "alice", Password: "wrong"})
	req.Equal(int32(errno.ErrLogin), statusCode(t, err))
	_, err = svc.Login(context.Background(), &core_api.LoginReq{Username: "nobody", Password: "secret"})
	req.Equal(int32(errno.ErrLogin), statusCode(t, err))
}

func TestVerifyToken(t *testing.T) {
	req := require.New(t)
	svc, users, _ := newTestAuthService()
	orgId := primitive.NewObjectID()
	u, err := users.Insert(context.Background(), &user.User{
		Username: "alice", DisplayName: "Alice", Role: cst.RoleAgent,
		OrganizationId: orgId,
	})
	req.NoError(err)

	token, err := svc.signToken(u)
	req.NoError(err)

	identity, err := svc.VerifyToken(context.Background(), token)
	req.NoError(err)
	req.Equal(u.ID.Hex(), identity.UserId)
	req.Equal("alice", identity.Username)
	// 租户id来自用户文档而不是令牌
	req.Equal(orgId.Hex(), identity.OrganizationId)

	_, err = svc.VerifyToken(context.Background(), "")
	req.Error(err)
	_, err = svc.VerifyToken(context.Background(), "not-a-jwt")
	req.Error(err)

	// 用其他密钥签出的令牌不被接受
	other := &AuthService{Config: &config.Config{Auth: config.Auth{SecretKey: "other", AccessExpire: 3600}}}
	forged, err := other.signToken(u)
	req.NoError(err)
	_, err = svc.VerifyToken(context.Background(), forged)
	req.Error(err)
}

func TestSlugify(t *testing.T) {
	req := require.New(t)
	req.Equal("acme-corp", Slugify("Acme Corp"))
	req.Equal("hello-world", Slugify("  --Hello__World--  "))
	req.Equal("a1-b2", Slugify("A1 (B2)"))
	req.Equal("", Slugify("!!!"))
}

func TestAvatarColor(t *testing.T) {
	req := require.New(t)
	c := AvatarColor("Alice")
	req.Len(c, 7)
	req.Equal(byte('#'), c[0])
	// 同一显示名颜色稳定
	req.Equal(c, AvatarColor("Alice"))
	req.NotEqual(c, AvatarColor("Bob"))
}
