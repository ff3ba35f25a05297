package core_api

import "github.com/chathub-im/chathub-core-api/biz/application/dto/basic"

type GenSignedURLReq struct {
	Prefix string `json:"prefix" vd:"len($)>0"`
}

func (r *GenSignedURLReq) GetPrefix() string { return r.Prefix }

type GenSignedURLResp struct {
	Resp         *basic.Response `json:"-"`
	PresignedURL string          `json:"presigned_url"`
	AccessURL    string          `json:"access_url"`
}
