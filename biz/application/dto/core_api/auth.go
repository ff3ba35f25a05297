package core_api

import "github.com/chathub-im/chathub-core-api/biz/application/dto/basic"

type RegisterReq struct {
	Username         string `json:"username" vd:"len($)>0"`
	DisplayName      string `json:"displayName" vd:"len($)>0"`
	Email            string `json:"email" vd:"len($)>0"`
	Password         string `json:"password" vd:"len($)>0"`
	OrganizationId   string `json:"organizationId"`
	OrganizationName string `json:"organizationName"`
	OrganizationSlug string `json:"organizationSlug"`
	Role             string `json:"role"`
}

type RegisterResp struct {
	Resp *basic.Response `json:"-"`
	User *UserInfo       `json:"user"`
}

type LoginReq struct {
	Username string `json:"username" vd:"len($)>0"`
	Password string `json:"password" vd:"len($)>0"`
}

type LoginResp struct {
	Resp        *basic.Response `json:"-"`
	AccessToken string          `json:"access_token"`
	User        *UserInfo       `json:"user"`
}

type ProfileReq struct{}

type ProfileResp struct {
	Resp *basic.Response `json:"-"`
	User *UserInfo       `json:"user"`
}

type ListOrganizationsReq struct{}

type ListOrganizationsResp struct {
	Resp          *basic.Response     `json:"-"`
	Organizations []*OrganizationInfo `json:"organizations"`
}

type GetOrganizationReq struct {
	Slug string `path:"slug"`
}

type GetOrganizationResp struct {
	Resp         *basic.Response   `json:"-"`
	Organization *OrganizationInfo `json:"organization"`
}

// UserInfo 脱敏后的用户信息, 不含密码
type UserInfo struct {
	UserId       string            `json:"user_id"`
	Username     string            `json:"username"`
	Email        string            `json:"email"`
	DisplayName  string            `json:"display_name"`
	Role         string            `json:"role"`
	AvatarColor  string            `json:"avatar_color,omitempty"`
	Organization *OrganizationInfo `json:"organization,omitempty"`
}

type OrganizationInfo struct {
	OrganizationId string `json:"organization_id"`
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
}
