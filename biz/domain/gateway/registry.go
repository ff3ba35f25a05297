package gateway

import (
	"sync"
)

// Identity 连接完成认证后绑定的坐席身份
// OrganizationId是服务端从令牌校验结果中得到的规范化租户id, 不信任客户端输入
type Identity struct {
	UserId         string
	Username       string
	DisplayName    string
	Role           string
	AvatarColor    string
	OrganizationId string
}

// Conn 注册表对底层连接的最小要求, *wsx.HZWSClient满足该接口
type Conn interface {
	WriteJSON(obj any) error
	IsClosed() bool
	Close() error
}

// Connection 一条在线连接的注册表条目
// identity认证后写入一次, conversationId随join/leave变化, 同一时刻至多绑定一个会话
type Connection struct {
	conn           Conn
	identity       *Identity
	conversationId string
}

// Identity 返回连接身份, 未认证时为nil
func (c *Connection) Identity() *Identity { return c.identity }

// Registry 维护当前在线连接及其身份与会话绑定
// hertz的websocket处理在多goroutine上运行, 所以用互斥锁保护,
// 广播通过快照遍历, 对已关闭连接跳过而不报错
type Registry struct {
	mu    sync.RWMutex
	conns map[*Connection]struct{}
}

func NewRegistry() *Registry {
	return &Registry{conns: map[*Connection]struct{}{}}
}

// Register 登记一条新连接, 此时既无身份也无绑定
func (r *Registry) Register(conn Conn) *Connection {
	c := &Connection{conn: conn}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[c] = struct{}{}
	return c
}

// SetIdentity 认证成功后绑定身份, 正常流程只会调用一次, 重复调用直接覆盖
func (r *Registry) SetIdentity(c *Connection, identity *Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.identity = identity
}

// Bind 绑定连接到指定会话, 覆盖此前的绑定
func (r *Registry) Bind(c *Connection, conversationId string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.conversationId = conversationId
}

// Unbind 清除会话绑定
func (r *Registry) Unbind(c *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.conversationId = ""
}

// Binding 返回连接当前绑定的会话id, 未绑定为空串
func (r *Registry) Binding(c *Connection) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return c.conversationId
}

// Deregister 移除连接, 所有断开路径都必须走到这里, 否则注册表无界增长
func (r *Registry) Deregister(c *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, c)
}

// BoundTo 返回当前绑定到指定会话的连接快照
// 快照不与并发变更保持原子, 调用方对已关闭的连接跳过即可
func (r *Registry) BoundTo(conversationId string) []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*Connection
	for c := range r.conns {
		if c.conversationId == conversationId {
			matched = append(matched, c)
		}
	}
	return matched
}

// Len 当前在线连接数
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
