package gateway

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFrame(t *testing.T) {
	req := require.New(t)

	f, err := parseFrame([]byte(`{"event":"joinConversation","data":"abc"}`))
	req.NoError(err)
	req.Equal("joinConversation", f.Event)

	_, err = parseFrame([]byte(`not json`))
	req.Error(err)
}

func TestFrameAsString(t *testing.T) {
	req := require.New(t)

	f := frameOf(t, `{"event":"joinConversation","data":"  conv-1  "}`)
	s, err := f.asString()
	req.NoError(err)
	req.Equal("conv-1", s)

	f = frameOf(t, `{"event":"joinConversation","data":{"id":"conv-1"}}`)
	_, err = f.asString()
	req.Error(err)
}

func TestFrameAsContent(t *testing.T) {
	req := require.New(t)

	// 对象形式
	req.Equal("hello", frameOf(t, `{"event":"sendMessage","data":{"content":"hello"}}`).asContent())
	// 早期版本的{data}字段
	req.Equal("legacy", frameOf(t, `{"event":"sendMessage","data":{"data":"legacy"}}`).asContent())
	// content优先于data
	req.Equal("a", frameOf(t, `{"event":"sendMessage","data":{"content":"a","data":"b"}}`).asContent())
	// 裸字符串
	req.Equal("plain", frameOf(t, `{"event":"sendMessage","data":"plain"}`).asContent())
	// 缺失或无法识别
	req.Empty(frameOf(t, `{"event":"sendMessage"}`).asContent())
	req.Empty(frameOf(t, `{"event":"sendMessage","data":{"other":1}}`).asContent())
	req.Empty(frameOf(t, `{"event":"sendMessage","data":42}`).asContent())
}
