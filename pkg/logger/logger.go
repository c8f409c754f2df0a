package logger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap logger so call sites share one set of field helpers.
type Logger struct {
	*zap.Logger
}

// New creates a new Logger with the given level and encoding ("json" or "console").
func New(level, encoding string) (*Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return nil, fmt.Errorf("failed to parse log level %q: %w", level, err)
		}
	}

	if encoding == "" {
		encoding = "json"
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = encoding
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zl, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &Logger{Logger: zl}, nil
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...)}
}

// DebugContext logs at debug level and attaches the request id from ctx when present.
func (l *Logger) DebugContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.Debug(msg, append(fields, contextFields(ctx)...)...)
}

// InfoContext logs at info level and attaches the request id from ctx when present.
func (l *Logger) InfoContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.Info(msg, append(fields, contextFields(ctx)...)...)
}

// ErrorContext logs at error level and attaches the request id from ctx when present.
func (l *Logger) ErrorContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.Error(msg, append(fields, contextFields(ctx)...)...)
}

type requestIDKey struct{}

// ContextWithRequestID stores a request id for the *Context log helpers.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func contextFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return []zap.Field{zap.String("request_id", id)}
	}
	return nil
}

// ErrorField returns a zap field for an error.
func ErrorField(err error) zap.Field {
	return zap.Error(err)
}

// StringField returns a zap field for a string value.
func StringField(key, value string) zap.Field {
	return zap.String(key, value)
}

// IntField returns a zap field for an int value.
func IntField(key string, value int) zap.Field {
	return zap.Int(key, value)
}

// Float64Field returns a zap field for a float64 value.
func Float64Field(key string, value float64) zap.Field {
	return zap.Float64(key, value)
}

// Field returns a zap field for an arbitrary value.
func Field(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}
