package wsx

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/websocket"
)

var (
	// NormalCloseErr 对端正常关闭
	NormalCloseErr = errors.New("websocket normal close")
	// AbnormalCloseErr 对端异常关闭
	AbnormalCloseErr = errors.New("websocket abnormal close")
)

const DefaultTimeout = 5 * time.Second

var NormalCloseMsg = websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")

// IsNormal 判断是否为无错或正常关闭
func IsNormal(err error) bool {
	return err == nil || errors.Is(err, NormalCloseErr)
}

// Classify 将websocket错误归类为正常关闭/异常关闭/其他
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived):
		return NormalCloseErr
	case websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived):
		return AbnormalCloseErr
	default:
		return err
	}
}

var upgrader = websocket.HertzUpgrader{
	CheckOrigin: func(_ *app.RequestContext) bool { return true },
}

// UpgradeWs 将hertz请求升级为websocket连接, 并交给handler处理
// handler返回即关闭连接
func UpgradeWs(ctx context.Context, c *app.RequestContext, handler func(ctx context.Context, conn *websocket.Conn)) error {
	return upgrader.Upgrade(c, func(conn *websocket.Conn) {
		handler(ctx, conn)
	})
}
