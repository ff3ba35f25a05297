package logs

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"
)

// 对logx的薄封装, 统一日志入口, Ctx系列携带链路信息

func Info(args ...any) {
	logx.Info(args...)
}

func Infof(format string, args ...any) {
	logx.Infof(format, args...)
}

func Error(args ...any) {
	logx.Error(args...)
}

func Errorf(format string, args ...any) {
	logx.Errorf(format, args...)
}

func CtxInfo(ctx context.Context, format string, args ...any) {
	logx.WithContext(ctx).Info(fmt.Sprintf(format, args...))
}

func CtxInfof(ctx context.Context, format string, args ...any) {
	logx.WithContext(ctx).Infof(format, args...)
}

func CtxWarnf(ctx context.Context, format string, args ...any) {
	logx.WithContext(ctx).Slowf(format, args...)
}

func CtxErrorf(ctx context.Context, format string, args ...any) {
	logx.WithContext(ctx).Errorf(format, args...)
}
