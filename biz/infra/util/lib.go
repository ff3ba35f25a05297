package util

import (
	"net/url"

	"github.com/bytedance/sonic"
	"github.com/chathub-im/chathub-core-api/biz/application/dto/basic"
)

// Success 返回成功的basic.Response指针
func Success() *basic.Response {
	return &basic.Response{
		Code: 200,
		Msg:  "success",
	}
}

// JSONF 将对象序列化为字符串, 仅用于日志
func JSONF(obj any) string {
	if obj == nil {
		return "<nil>"
	}
	s, err := sonic.MarshalString(obj)
	if err != nil {
		return "<marshal error>"
	}
	return s
}

// Str2URL 解析url字符串, 解析失败返回空URL
func Str2URL(s string) *url.URL {
	u, err := url.Parse(s)
	if err != nil {
		return &url.URL{}
	}
	return u
}

// SignedCOS2CDN 把预签名url换成CDN访问url: 替换host并去掉签名query
func SignedCOS2CDN(signed, cdn string) string {
	u, err := url.Parse(signed)
	if err != nil {
		return signed
	}
	c := Str2URL(cdn)
	if c.Host == "" {
		return signed
	}
	u.Scheme = c.Scheme
	u.Host = c.Host
	u.RawQuery = ""
	return u.String()
}

// Truncate 按rune截取字符串前n个字符
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
