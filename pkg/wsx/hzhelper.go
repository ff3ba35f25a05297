package wsx

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/chathub-im/chathub-core-api/pkg/logs"
	"github.com/hertz-contrib/websocket"
)

// HZWSClient 是基于hertz-contrib/websocket的工具类, 封装了常见读写操作, 简化了异常处理
// 最佳实践是单线程读, 所以此处不设读锁, 若并发读, 需自行维护读锁
// 一个client和一个conn一一对应, 不支持更改client的conn
type HZWSClient struct {
	// 写锁
	mu   sync.Mutex
	conn *websocket.Conn
	// 连接是否关闭, 读循环写入而广播goroutine读取, 所以用原子量
	closed atomic.Bool
}

// NewHZWSClient 生成管理传入连接的client
func NewHZWSClient(conn *websocket.Conn) *HZWSClient {
	return &HZWSClient{conn: conn}
}

// classifyErr 归类错误并维护closed状态
func (ws *HZWSClient) classifyErr(err error) error {
	e := Classify(err)
	if e == NormalCloseErr || e == AbnormalCloseErr {
		ws.closed.Store(true)
	}
	return e
}

// Read 读取一条消息, 同时返回错误
func (ws *HZWSClient) Read() (mt int, data []byte, err error) {
	mt, data, err = ws.conn.ReadMessage()
	return mt, data, ws.classifyErr(err)
}

// ReadBytes 读取一条二进制消息
func (ws *HZWSClient) ReadBytes() (data []byte, err error) {
	_, data, err = ws.Read()
	return data, err
}

// ReadString 读取一条文本消息
func (ws *HZWSClient) ReadString() (string, error) {
	_, data, err := ws.Read()
	return string(data), err
}

// Write 写入指定类型消息
func (ws *HZWSClient) Write(mt int, data []byte) (err error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	err = ws.conn.WriteMessage(mt, data)
	return ws.classifyErr(err)
}

// WriteBytes 写入二进制消息
func (ws *HZWSClient) WriteBytes(data []byte) (err error) {
	return ws.Write(websocket.BinaryMessage, data)
}

// WriteString 写入字符串消息
func (ws *HZWSClient) WriteString(data string) (err error) {
	return ws.Write(websocket.TextMessage, []byte(data))
}

// WriteJSON 写入序列化为JSON的对象
func (ws *HZWSClient) WriteJSON(obj any) (err error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.classifyErr(ws.conn.WriteJSON(obj))
}

// Ping 写入心跳消息
func (ws *HZWSClient) Ping(data []byte) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.conn.WriteControl(websocket.PingMessage, data, time.Now().Add(DefaultTimeout))
}

func (ws *HZWSClient) SetPingHandler(h func(appData string) error) {
	ws.conn.SetPingHandler(h)
}

func (ws *HZWSClient) SetCloseHandler(h func(code int, text string) error) {
	ws.conn.SetCloseHandler(h)
}

// Close 关闭连接, 重复关闭无副作用
func (ws *HZWSClient) Close() error {
	if !ws.closed.Swap(true) {
		if err := ws.conn.WriteControl(websocket.CloseMessage, NormalCloseMsg, time.Now().Add(DefaultTimeout)); err != nil {
			logs.Error("[HZWSClient] send close message error", err)
		}
		return ws.conn.Close()
	}
	return nil
}

// Terminate 直接断开底层连接, 不发送close帧
// 用于认证失败等不向对端解释的场景
func (ws *HZWSClient) Terminate() error {
	ws.closed.Store(true)
	return ws.conn.Close()
}

func (ws *HZWSClient) IsClosed() bool {
	return ws.closed.Load()
}
