package core_api

import (
	"context"

	"github.com/chathub-im/chathub-core-api/pkg/errorx"
	"github.com/chathub-im/chathub-core-api/pkg/logs"
	"github.com/chathub-im/chathub-core-api/pkg/wsx"
	"github.com/chathub-im/chathub-core-api/provider"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/websocket"
)

// ChatWs 会话网关websocket入口, 凭证走握手时的query参数
// @router /chat/ws [GET]
func ChatWs(ctx context.Context, c *app.RequestContext) {
	token := c.Query("token")
	err := wsx.UpgradeWs(ctx, c, func(ctx context.Context, conn *websocket.Conn) {
		provider.Get().Gateway.Serve(ctx, token, conn)
	})
	if err != nil {
		logs.Errorf("[controller] [ChatWs] websocket upgrade error: %s", errorx.ErrorWithoutStack(err))
	}
}
