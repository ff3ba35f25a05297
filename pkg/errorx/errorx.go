package errorx

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/chathub-im/chathub-core-api/pkg/errorx/code"
)

// StatusError 携带业务错误码的错误
// 最佳实践:
// - 业务处理链路的末端返回StatusError, PostProcess统一转换为响应体
// - 其余位置的error照常包装传递
type StatusError interface {
	error
	Code() int32
	Msg() string
}

type statusError struct {
	code  int32
	msg   string
	cause error
	stack string
	kvs   []kv
}

type kv struct {
	k, v string
}

type Option func(*statusError)

// KV 在错误文案中替换{key}占位符
func KV(k, v string) Option {
	return func(e *statusError) {
		e.kvs = append(e.kvs, kv{k: k, v: v})
	}
}

// New 根据注册的错误码创建StatusError
func New(c int32, opts ...Option) error {
	e := &statusError{code: c, stack: string(debug.Stack())}
	if d := code.Find(c); d != nil {
		e.msg = d.Msg
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WrapByCode 将err包装为指定错误码的StatusError, err为nil时返回nil
func WrapByCode(err error, c int32, opts ...Option) error {
	if err == nil {
		return nil
	}
	e := &statusError{code: c, cause: err, stack: string(debug.Stack())}
	if d := code.Find(c); d != nil {
		e.msg = d.Msg
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *statusError) Code() int32 { return e.code }

func (e *statusError) Msg() string {
	msg := e.msg
	for _, p := range e.kvs {
		msg = strings.ReplaceAll(msg, "{"+p.k+"}", p.v)
	}
	return msg
}

func (e *statusError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("code=%d, msg=%s, cause=%s", e.code, e.Msg(), e.cause.Error())
	}
	return fmt.Sprintf("code=%d, msg=%s", e.code, e.Msg())
}

func (e *statusError) Unwrap() error { return e.cause }

// ErrorWithoutStack 返回不带堆栈的错误描述, 用于日志
func ErrorWithoutStack(err error) string {
	if err == nil {
		return "<nil>"
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.Error()
	}
	return err.Error()
}
