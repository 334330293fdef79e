package log

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// Init configures the process-wide logger.
// Messages are written to stdout as plain console lines.
func Init(debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stdout), level)
	l := zap.New(core)

	mu.Lock()
	global = l
	mu.Unlock()
	return l
}

// SetLogger replaces the process-wide logger
func SetLogger(l *zap.Logger) {
	mu.Lock()
	global = l
	mu.Unlock()
}

// Logger returns the logger carried by ctx, or the process-wide one
func Logger(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
			return l
		}
	}
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// With returns a context whose logger carries the key/value field
func With(ctx context.Context, key string, value interface{}) context.Context {
	return context.WithValue(ctx, ctxKey{}, Logger(ctx).With(zap.Any(key, value)))
}

// Sync flushes the process-wide logger
func Sync() {
	_ = Logger(context.Background()).Sync()
}

// Fatal logs the message with the process-wide logger, then exits
func Fatal(msg string, fields ...zap.Field) {
	Logger(context.Background()).Fatal(msg, fields...)
}
