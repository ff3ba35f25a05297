package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/chathub-im/chathub-core-api/biz/infra/cst"
	"github.com/chathub-im/chathub-core-api/biz/infra/mapper/message"
	"github.com/chathub-im/chathub-core-api/pkg/errorx"
	"github.com/chathub-im/chathub-core-api/pkg/logs"
	"github.com/chathub-im/chathub-core-api/pkg/safego"
	"github.com/chathub-im/chathub-core-api/pkg/wsx"
	"github.com/google/wire"
	"github.com/hertz-contrib/websocket"
)

// pingInterval 保活心跳间隔
const pingInterval = 30 * time.Second

// TokenValidator 校验bearer凭证并返回持有者身份
type TokenValidator interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}

// ConversationStore 网关依赖的会话存储, 所有操作都由网关以调用方租户id限定
type ConversationStore interface {
	// MessagesForConversation 返回按创建时间升序的全部消息, 会话不在该租户内则报错
	MessagesForConversation(ctx context.Context, conversationId, organizationId string) ([]*message.Message, error)
	// AppendMessage 持久化一条消息并更新会话的预览与活跃时间
	AppendMessage(ctx context.Context, content string, sender *Identity, conversationId, direction, organizationId string) (*message.Message, error)
}

// Gateway 会话网关: 连接认证, 订阅切换, 消息持久化与扇出
// 广播采用单进程内扫描在线连接的方式, 这是一个已知的规模上限, 不做跨进程扇出
type Gateway struct {
	Validator TokenValidator
	Store     ConversationStore
	Registry  *Registry
}

var GatewaySet = wire.NewSet(
	NewRegistry,
	wire.Struct(new(Gateway), "*"),
)

// Serve 接管一条升级完成的websocket连接, 返回即连接结束
// token来自握手时的query参数, 仅在建立连接时校验一次, 之后不做过期复查
func (g *Gateway) Serve(ctx context.Context, token string, wsConn *websocket.Conn) {
	cli := wsx.NewHZWSClient(wsConn)

	// 认证失败直接断开, 不向对端发送任何消息
	identity, err := g.Validator.VerifyToken(ctx, token)
	if err != nil {
		logs.CtxInfof(ctx, "[gateway] authentication failed: %s", errorx.ErrorWithoutStack(err))
		_ = cli.Terminate()
		return
	}

	conn := g.Registry.Register(cli)
	g.Registry.SetIdentity(conn, identity)
	logs.CtxInfof(ctx, "[gateway] client connected: %s", identity.Username)

	// 所有退出路径都注销连接, 否则注册表泄漏
	pingCtx, cancelPing := context.WithCancel(ctx)
	defer func() {
		cancelPing()
		g.Registry.Deregister(conn)
		_ = cli.Close()
		logs.CtxInfof(ctx, "[gateway] client disconnected: %s", identity.Username)
	}()

	// 保活心跳, 对端断开由读循环感知
	safego.Go(pingCtx, func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-pingCtx.Done():
				return
			case <-ticker.C:
				if cli.IsClosed() {
					return
				}
				_ = cli.Ping(nil)
			}
		}
	})

	for {
		data, err := cli.ReadBytes()
		if err != nil {
			if !wsx.IsNormal(err) {
				logs.CtxInfof(ctx, "[gateway] read error: %s", errorx.ErrorWithoutStack(err))
			}
			return
		}
		f, err := parseFrame(data)
		if err != nil {
			// 帧不是合法信封, 丢弃
			continue
		}
		g.dispatch(ctx, conn, f)
	}
}

// dispatch 同一连接的帧在读循环内顺序处理, 未知事件忽略
func (g *Gateway) dispatch(ctx context.Context, conn *Connection, f *frame) {
	switch f.Event {
	case cst.EventJoinConversation:
		g.handleJoin(ctx, conn, f)
	case cst.EventLeaveConversation:
		g.handleLeave(conn)
	case cst.EventSendMessage:
		g.handleSend(ctx, conn, f)
	}
}

// handleJoin 订阅会话: 校验租户归属, 绑定, 向请求连接单发全量历史
// 失败只回error事件, 不改动现有绑定
func (g *Gateway) handleJoin(ctx context.Context, conn *Connection, f *frame) {
	conversationId, err := f.asString()
	if err != nil || conversationId == "" {
		g.sendError(conn, errors.New("conversation id required"))
		return
	}
	identity := conn.Identity()
	if identity == nil {
		g.sendError(conn, errors.New("not authenticated"))
		return
	}
	msgs, err := g.Store.MessagesForConversation(ctx, conversationId, identity.OrganizationId)
	if err != nil {
		logs.CtxInfof(ctx, "[gateway] join conversation %s failed: %s", conversationId, errorx.ErrorWithoutStack(err))
		g.sendError(conn, err)
		return
	}
	g.Registry.Bind(conn, conversationId)
	if msgs == nil {
		msgs = []*message.Message{}
	}
	g.send(conn, &Envelope{Event: cst.EventMessageHistory, Data: msgs})
}

// handleLeave 清除绑定, 不回复
func (g *Gateway) handleLeave(conn *Connection) {
	g.Registry.Unbind(conn)
}

// handleSend 持久化消息并向绑定同一会话的所有连接广播
// 没有身份或没有绑定时静默丢弃, 这是沿袭下来的已知缺口: 不回error事件
// 持久化失败时记录日志并放弃广播, 连接保持打开, 发送方收不到任何反馈
func (g *Gateway) handleSend(ctx context.Context, conn *Connection, f *frame) {
	identity := conn.Identity()
	conversationId := g.Registry.Binding(conn)
	if identity == nil || conversationId == "" {
		return
	}
	content := f.asContent()
	if content == "" {
		return
	}

	saved, err := g.Store.AppendMessage(ctx, content, identity, conversationId, cst.DirectionOutbound, identity.OrganizationId)
	if err != nil {
		logs.CtxErrorf(ctx, "[gateway] persist message failed: %s", errorx.ErrorWithoutStack(err))
		return
	}

	// 扇出给此刻绑定该会话的连接, 发送方自己若仍绑定也会收到
	envelope := &Envelope{Event: cst.EventReceiveMessage, Data: saved}
	for _, peer := range g.Registry.BoundTo(conversationId) {
		g.send(peer, envelope)
	}
}

// send 尽力而为的单发, 对已关闭连接跳过, 写失败只记日志
func (g *Gateway) send(conn *Connection, envelope *Envelope) {
	if conn.conn.IsClosed() {
		return
	}
	if err := conn.conn.WriteJSON(envelope); err != nil && !wsx.IsNormal(err) {
		logs.Errorf("[gateway] write failed: %s", errorx.ErrorWithoutStack(err))
	}
}

// sendError 只向请求连接回error事件, 业务错误取注册的文案
func (g *Gateway) sendError(conn *Connection, err error) {
	msg := "无法访问请求的会话"
	var se errorx.StatusError
	if errors.As(err, &se) && se.Msg() != "" {
		msg = se.Msg()
	}
	g.send(conn, &Envelope{Event: cst.EventError, Data: msg})
}
