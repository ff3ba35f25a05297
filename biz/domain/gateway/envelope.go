package gateway

import (
	"encoding/json"
	"strings"

	"github.com/bytedance/sonic"
)

// Envelope websocket帧的JSON信封
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// frame 入站帧, data延迟解析
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func parseFrame(data []byte) (*frame, error) {
	var f frame
	if err := sonic.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// asString 将data解析为字符串, joinConversation的data是裸字符串会话id
func (f *frame) asString() (string, error) {
	var s string
	if err := sonic.Unmarshal(f.Data, &s); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// sendPayload sendMessage的对象形式载荷
type sendPayload struct {
	Content string `json:"content"`
	Data    string `json:"data"`
}

// asContent 归一化sendMessage的消息内容
// 历史上存在两种载荷形状: 裸字符串和{content}对象(更早的版本用{data}), 两种都要兼容
func (f *frame) asContent() string {
	if len(f.Data) == 0 {
		return ""
	}
	var p sendPayload
	if err := sonic.Unmarshal(f.Data, &p); err == nil {
		if p.Content != "" {
			return p.Content
		}
		if p.Data != "" {
			return p.Data
		}
		return ""
	}
	var s string
	if err := sonic.Unmarshal(f.Data, &s); err == nil {
		return s
	}
	return ""
}
