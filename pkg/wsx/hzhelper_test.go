package wsx

import (
	"errors"
	"sync"
	"testing"

	"github.com/hertz-contrib/websocket"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	req := require.New(t)
	req.Nil(Classify(nil))
	req.Equal(NormalCloseErr, Classify(&websocket.CloseError{Code: websocket.CloseGoingAway}))
	req.Equal(AbnormalCloseErr, Classify(&websocket.CloseError{Code: websocket.CloseProtocolError}))
	plain := errors.New("read timeout")
	req.Equal(plain, Classify(plain))

	req.True(IsNormal(nil))
	req.True(IsNormal(NormalCloseErr))
	req.False(IsNormal(AbnormalCloseErr))
}

// 读循环在无锁路径上标记关闭, 广播goroutine并发读取该状态
func TestHZWSClient_ClosedStateVisibleAcrossGoroutines(t *testing.T) {
	req := require.New(t)
	ws := &HZWSClient{}
	req.False(ws.IsClosed())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				ws.IsClosed()
			}
		}()
	}
	req.Equal(NormalCloseErr, ws.classifyErr(&websocket.CloseError{Code: websocket.CloseNormalClosure}))
	wg.Wait()
	req.True(ws.IsClosed())
}
