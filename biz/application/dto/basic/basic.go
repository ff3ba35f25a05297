package basic

// Response 所有HTTP响应的公共部分
type Response struct {
	Code int32  `json:"code"`
	Msg  string `json:"msg"`
}

func (r *Response) GetCode() int32 {
	if r == nil {
		return 0
	}
	return r.Code
}

func (r *Response) GetMsg() string {
	if r == nil {
		return ""
	}
	return r.Msg
}
