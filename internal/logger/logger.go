package logger

import (
	"log"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "kitshop"

var current atomic.Pointer[zap.Logger]

var fallback = newLogger(zapcore.NewCore(
	zapcore.NewConsoleEncoder(encoderConfig()),
	zapcore.AddSync(os.Stdout),
	zap.NewAtomicLevelAt(zap.InfoLevel),
))

// Init 按运行模式初始化全局日志并替换 zap 全局实例
func Init(mode string, options Options) *zap.Logger {
	l := New(mode, options)
	current.Store(l)
	zap.ReplaceGlobals(l)
	return l
}

// Current 当前全局日志，未初始化时返回控制台日志
func Current() *zap.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return fallback
}

// S 全局 SugaredLogger
func S() *zap.SugaredLogger {
	return Current().Sugar()
}

// With 附带固定字段的 SugaredLogger
func With(kv ...interface{}) *zap.SugaredLogger {
	return S().With(kv...)
}

// StdLogger 兼容标准库 log 的适配
func StdLogger() *log.Logger {
	return zap.NewStdLog(Current())
}

// Sync 刷新缓冲
func Sync() {
	_ = Current().Sync()
}

func Debugw(message string, kv ...interface{}) {
	S().Debugw(message, kv...)
}

func Infow(message string, kv ...interface{}) {
	S().Infow(message, kv...)
}

func Warnw(message string, kv ...interface{}) {
	S().Warnw(message, kv...)
}

func Errorw(message string, kv ...interface{}) {
	S().Errorw(message, kv...)
}

func newLogger(core zapcore.Core) *zap.Logger {
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).With(zap.String("service", serviceName))
}
