package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/chathub-im/chathub-core-api/biz/infra/cst"
	"github.com/chathub-im/chathub-core-api/biz/infra/mapper/message"
	"github.com/chathub-im/chathub-core-api/types/errno"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeConn struct {
	mu       sync.Mutex
	frames   []*Envelope
	closed   bool
	writeErr error
}

func (f *fakeConn) WriteJSON(obj any) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, obj.(*Envelope))
	return nil
}

func (f *fakeConn) IsClosed() bool { return f.closed }
func (f *fakeConn) Close() error   { f.closed = true; return nil }

func (f *fakeConn) received() []*Envelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Envelope{}, f.frames...)
}

type fakeStore struct {
	history   map[string][]*message.Message
	appended  []*message.Message
	appendErr error
}

func (s *fakeStore) MessagesForConversation(_ context.Context, conversationId, _ string) ([]*message.Message, error) {
	msgs, ok := s.history[conversationId]
	if !ok {
		return nil, errorStatus(errno.ConversationNotFoundErrCode)
	}
	return msgs, nil
}

func (s *fakeStore) AppendMessage(_ context.Context, content string, sender *Identity, conversationId, direction, _ string) (*message.Message, error) {
	if s.appendErr != nil {
		return nil, s.appendErr
	}
	msg := &message.Message{
		ID:             primitive.NewObjectID(),
		ConversationId: mustOID(conversationId),
		Content:        content,
		Direction:      direction,
		CreateTime:     time.Now(),
	}
	if sender != nil {
		oid := mustOID(sender.UserId)
		msg.SenderId = &oid
	}
	s.appended = append(s.appended, msg)
	return msg, nil
}

func errorStatus(code int32) error {
	return fmt.Errorf("status %d", code)
}

func mustOID(s string) primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NewObjectID()
	}
	return oid
}

func newTestGateway(store *fakeStore) *Gateway {
	return &Gateway{
		Store:    store,
		Registry: NewRegistry(),
	}
}

func connect(g *Gateway, identity *Identity) (*Connection, *fakeConn) {
	fc := &fakeConn{}
	conn := g.Registry.Register(fc)
	if identity != nil {
		g.Registry.SetIdentity(conn, identity)
	}
	return conn, fc
}

func frameOf(t *testing.T, raw string) *frame {
	t.Helper()
	f, err := parseFrame([]byte(raw))
	require.NoError(t, err)
	return f
}

func agent() *Identity {
	return &Identity{
		UserId:         primitive.NewObjectID().Hex(),
		Username:       "alice",
		DisplayName:    "Alice",
		Role:           cst.RoleAgent,
		OrganizationId: primitive.NewObjectID().Hex(),
	}
}

func TestGateway_JoinSendsHistory(t *testing.T) {
	req := require.New(t)
	msgs := []*message.Message{
		{ID: primitive.NewObjectID(), Content: "first"},
		{ID: primitive.NewObjectID(), Content: "second"},
	}
	g := newTestGateway(&fakeStore{history: map[string][]*message.Message{"conv-1": msgs}})
	conn, fc := connect(g, agent())

	g.dispatch(context.Background(), conn, frameOf(t, `{"event":"joinConversation","data":"conv-1"}`))

	req.Equal("conv-1", g.Registry.Binding(conn))
	got := fc.received()
	req.Len(got, 1)
	req.Equal(cst.EventMessageHistory, got[0].Event)
	req.Equal(msgs, got[0].Data)
}

func TestGateway_JoinEmptyHistory(t *testing.T) {
	req := require.New(t)
	g := newTestGateway(&fakeStore{history: map[string][]*message.Message{"conv-1": nil}})
	conn, fc := connect(g, agent())

	g.dispatch(context.Background(), conn, frameOf(t, `{"event":"joinConversation","data":"conv-1"}`))

	got := fc.received()
	req.Len(got, 1)
	req.Equal(cst.EventMessageHistory, got[0].Event)
	// 空历史回空数组而不是null
	req.NotNil(got[0].Data)
	req.Empty(got[0].Data)
}

func TestGateway_JoinDeniedKeepsBinding(t *testing.T) {
	req := require.New(t)
	g := newTestGateway(&fakeStore{history: map[string][]*message.Message{"conv-1": {}}})
	conn, fc := connect(g, agent())

	g.dispatch(context.Background(), conn, frameOf(t, `{"event":"joinConversation","data":"conv-1"}`))
	req.Equal("conv-1", g.Registry.Binding(conn))

	// 加入失败只回error事件, 原有绑定不动
	g.dispatch(context.Background(), conn, frameOf(t, `{"event":"joinConversation","data":"conv-absent"}`))
	req.Equal("conv-1", g.Registry.Binding(conn))
	got := fc.received()
	req.Len(got, 2)
	req.Equal(cst.EventError, got[1].Event)
}

func TestGateway_JoinWithoutId(t *testing.T) {
	req := require.New(t)
	g := newTestGateway(&fakeStore{})
	conn, fc := connect(g, agent())

	g.dispatch(context.Background(), conn, frameOf(t, `{"event":"joinConversation"}`))

	req.Empty(g.Registry.Binding(conn))
	got := fc.received()
	req.Len(got, 1)
	req.Equal(cst.EventError, got[0].Event)
}

func TestGateway_SendBroadcastsToBoundConnections(t *testing.T) {
	req := require.New(t)
	store := &fakeStore{history: map[string][]*message.Message{"conv-1": {}, "conv-2": {}}}
	g := newTestGateway(store)

	sender := agent()
	senderConn, senderFc := connect(g, sender)
	peerConn, peerFc := connect(g, agent())
	otherConn, otherFc := connect(g, agent())
	g.Registry.Bind(senderConn, "conv-1")
	g.Registry.Bind(peerConn, "conv-1")
	g.Registry.Bind(otherConn, "conv-2")

	g.dispatch(context.Background(), senderConn, frameOf(t, `{"event":"sendMessage","data":{"content":"hello"}}`))

	req.Len(store.appended, 1)
	saved := store.appended[0]
	req.Equal("hello", saved.Content)
	req.Equal(cst.DirectionOutbound, saved.Direction)
	req.Equal(sender.UserId, saved.SenderId.Hex())

	// 发送方自己也收到广播, 其他会话的连接收不到
	for _, fc := range []*fakeConn{senderFc, peerFc} {
		got := fc.received()
		req.Len(got, 1)
		req.Equal(cst.EventReceiveMessage, got[0].Event)
		req.Equal(saved, got[0].Data)
	}
	req.Empty(otherFc.received())
}

func TestGateway_SendPayloadShapes(t *testing.T) {
	req := require.New(t)
	store := &fakeStore{history: map[string][]*message.Message{"conv-1": {}}}
	g := newTestGateway(store)
	conn, _ := connect(g, agent())
	g.Registry.Bind(conn, "conv-1")

	// 裸字符串与{data}两种历史载荷形状同样有效
	g.dispatch(context.Background(), conn, frameOf(t, `{"event":"sendMessage","data":"plain"}`))
	g.dispatch(context.Background(), conn, frameOf(t, `{"event":"sendMessage","data":{"data":"legacy"}}`))

	req.Len(store.appended, 2)
	req.Equal("plain", store.appended[0].Content)
	req.Equal("legacy", store.appended[1].Content)
}

func TestGateway_SendSilentDrops(t *testing.T) {
	req := require.New(t)
	store := &fakeStore{history: map[string][]*message.Message{"conv-1": {}}}
	g := newTestGateway(store)

	// 未绑定会话
	unbound, unboundFc := connect(g, agent())
	g.dispatch(context.Background(), unbound, frameOf(t, `{"event":"sendMessage","data":{"content":"x"}}`))

	// 未认证
	anon, anonFc := connect(g, nil)
	g.Registry.Bind(anon, "conv-1")
	g.dispatch(context.Background(), anon, frameOf(t, `{"event":"sendMessage","data":{"content":"x"}}`))

	// 空内容
	empty, emptyFc := connect(g, agent())
	g.Registry.Bind(empty, "conv-1")
	g.dispatch(context.Background(), empty, frameOf(t, `{"event":"sendMessage","data":{"content":""}}`))

	req.Empty(store.appended)
	req.Empty(unboundFc.received())
	req.Empty(anonFc.received())
	req.Empty(emptyFc.received())
}

func TestGateway_LeaveThenSendIsDropped(t *testing.T) {
	req := require.New(t)
	store := &fakeStore{history: map[string][]*message.Message{"conv-1": {}}}
	g := newTestGateway(store)
	conn, fc := connect(g, agent())
	g.Registry.Bind(conn, "conv-1")

	g.dispatch(context.Background(), conn, frameOf(t, `{"event":"leaveConversation"}`))
	req.Empty(g.Registry.Binding(conn))

	g.dispatch(context.Background(), conn, frameOf(t, `{"event":"sendMessage","data":{"content":"late"}}`))
	req.Empty(store.appended)
	req.Empty(fc.received())
}

func TestGateway_SendPersistFailureSkipsBroadcast(t *testing.T) {
	req := require.New(t)
	store := &fakeStore{
		history:   map[string][]*message.Message{"conv-1": {}},
		appendErr: errors.New("mongo down"),
	}
	g := newTestGateway(store)
	conn, fc := connect(g, agent())
	g.Registry.Bind(conn, "conv-1")

	g.dispatch(context.Background(), conn, frameOf(t, `{"event":"sendMessage","data":{"content":"hello"}}`))

	// 落库失败不广播, 连接保持打开
	req.Empty(fc.received())
	req.Equal(1, g.Registry.Len())
}

func TestGateway_BroadcastSkipsClosedConnections(t *testing.T) {
	req := require.New(t)
	store := &fakeStore{history: map[string][]*message.Message{"conv-1": {}}}
	g := newTestGateway(store)

	sender, _ := connect(g, agent())
	g.Registry.Bind(sender, "conv-1")
	gone, goneFc := connect(g, agent())
	g.Registry.Bind(gone, "conv-1")
	goneFc.closed = true

	g.dispatch(context.Background(), sender, frameOf(t, `{"event":"sendMessage","data":{"content":"hello"}}`))

	req.Len(store.appended, 1)
	req.Empty(goneFc.received())
}

func TestGateway_UnknownEventIgnored(t *testing.T) {
	req := require.New(t)
	g := newTestGateway(&fakeStore{})
	conn, fc := connect(g, agent())

	g.dispatch(context.Background(), conn, frameOf(t, `{"event":"typing","data":"conv-1"}`))

	req.Empty(fc.received())
	req.Empty(g.Registry.Binding(conn))
}
