// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContextKey represents keys for context values
type ContextKey string

const (
	ContextKeyRequestID  ContextKey = "request_id"
	ContextKeyResource   ContextKey = "resource"
	ContextKeyOperation  ContextKey = "operation"
	ContextKeyPage       ContextKey = "page"
	ContextKeyUser       ContextKey = "user"
	ContextKeyMethod     ContextKey = "method"
	ContextKeyPath       ContextKey = "path"
	ContextKeyStatusCode ContextKey = "status_code"
	ContextKeyDuration   ContextKey = "duration_ms"
)

// LogConfig holds logger configuration
type LogConfig struct {
	Level          string
	Format         string
	Output         io.Writer
	File           string
	AddSource      bool
	SampleRate     float64 // share of debug and info records kept; 0 or 1 keeps all
	Environment    string
	ServiceName    string
	ServiceVersion string
}

// Logger wraps the configured slog.Logger
type Logger struct {
	*slog.Logger
}

// SetupLogger builds the process logger and installs it as the slog default.
// Logs go to stderr so stdout stays free for command output.
func SetupLogger(level, format string, sampleRate float64) *Logger {
	logger := NewLogger(&LogConfig{
		Level:       level,
		Format:      format,
		SampleRate:  sampleRate,
		Output:      os.Stderr,
		File:        os.Getenv("LOG_FILE"),
		AddSource:   strings.EqualFold(level, "debug"),
		ServiceName: os.Getenv("SERVICE_NAME"),
		Environment: os.Getenv("APP_ENV"),
	})
	slog.SetDefault(logger.Logger)

	return logger
}

// NewLogger creates a new logger
func NewLogger(config *LogConfig) *Logger {
	if config == nil {
		config = &LogConfig{Level: "info", Format: "json"}
	}
	if config.Output == nil {
		config.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     ParseLevel(config.Level),
		AddSource: config.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			return replaceAttr(config, groups, a)
		},
	}

	var handler slog.Handler
	switch config.Format {
	case "text":
		handler = NewPrettyTextHandler(config.Output, opts)
	default:
		handler = slog.NewJSONHandler(config.Output, opts)
	}

	if config.File != "" {
		if file, err := os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
			handler = NewMultiHandler(handler, slog.NewJSONHandler(file, opts))
		}
	}

	handler = NewSanitizationHandler(handler)

	if config.SampleRate > 0 && config.SampleRate < 1.0 {
		handler = NewSamplingHandler(handler, config.SampleRate)
	}

	// outermost so context values pass through sanitization
	handler = NewContextHandler(handler, defaultContextKeys())

	var attrs []slog.Attr
	if config.ServiceName != "" {
		attrs = append(attrs, slog.String("service", config.ServiceName))
	}
	if config.ServiceVersion != "" {
		attrs = append(attrs, slog.String("version", config.ServiceVersion))
	}
	if config.Environment != "" {
		attrs = append(attrs, slog.String("env", config.Environment))
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	return &Logger{Logger: slog.New(handler)}
}

// WithRequestID stores id in ctx, generating one when id is empty
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, ContextKeyRequestID, id)
}

// RequestID returns the request id stored in ctx
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyRequestID).(string)
	return id
}

// WithOperation tags ctx with the resource and operation being performed
func WithOperation(ctx context.Context, resource, operation string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyResource, resource)
	return context.WithValue(ctx, ContextKeyOperation, operation)
}

// WithValue stores an arbitrary logging value under key
func WithValue(ctx context.Context, key ContextKey, value any) context.Context {
	return context.WithValue(ctx, key, value)
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func defaultContextKeys() []ContextKey {
	return []ContextKey{
		ContextKeyRequestID,
		ContextKeyResource,
		ContextKeyOperation,
		ContextKeyPage,
		ContextKeyUser,
		ContextKeyMethod,
		ContextKeyPath,
		ContextKeyStatusCode,
		ContextKeyDuration,
	}
}

func extractContextAttrs(ctx context.Context, keys []ContextKey) []slog.Attr {
	if ctx == nil {
		return nil
	}

	var attrs []slog.Attr
	for _, key := range keys {
		val := ctx.Value(key)
		if val == nil {
			continue
		}
		keyStr := string(key)
		switch v := val.(type) {
		case string:
			if v != "" {
				attrs = append(attrs, slog.String(keyStr, v))
			}
		case int:
			attrs = append(attrs, slog.Int(keyStr, v))
		case int64:
			attrs = append(attrs, slog.Int64(keyStr, v))
		case time.Duration:
			attrs = append(attrs, slog.Duration(keyStr, v))
		case uuid.UUID:
			attrs = append(attrs, slog.String(keyStr, v.String()))
		case fmtStringer:
			attrs = append(attrs, slog.String(keyStr, v.String()))
		default:
			attrs = append(attrs, slog.Any(keyStr, v))
		}
	}
	return attrs
}

type fmtStringer interface{ String() string }

func replaceAttr(config *LogConfig, _ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
		}
	}

	if a.Key == slog.LevelKey && config.Format == "json" {
		a.Key = "severity"
	}

	if strings.HasSuffix(a.Key, "_ms") {
		if d, ok := a.Value.Any().(time.Duration); ok {
			a.Value = slog.Float64Value(float64(d.Microseconds()) / 1000)
		}
	}

	return a
}
