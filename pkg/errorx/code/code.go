package code

import "sync"

// 错误码注册表, 各errno包在init中注册自己的错误码和默认文案
var (
	mu       sync.RWMutex
	registry = map[int32]*Definition{}
)

type Definition struct {
	Code            int32
	Msg             string
	AffectStability bool
}

type Option func(*Definition)

// WithAffectStability 标记该错误是否影响服务稳定性指标
func WithAffectStability(affect bool) Option {
	return func(d *Definition) {
		d.AffectStability = affect
	}
}

// Register 注册错误码, 重复注册以后者为准
func Register(code int32, msg string, opts ...Option) {
	d := &Definition{Code: code, Msg: msg}
	for _, opt := range opts {
		opt(d)
	}
	mu.Lock()
	defer mu.Unlock()
	registry[code] = d
}

// Find 查找错误码定义, 未注册返回nil
func Find(code int32) *Definition {
	mu.RLock()
	defer mu.RUnlock()
	return registry[code]
}
