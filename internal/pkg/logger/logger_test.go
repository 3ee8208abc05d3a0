package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockdesk/internal/pkg/logger"
)

func newJSONLogger(buf *bytes.Buffer, level string) *logger.Logger {
	return logger.NewLogger(&logger.LogConfig{Level: level, Format: "json", Output: buf})
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_ContextValues(t *testing.T) {
	var buf bytes.Buffer
	log := newJSONLogger(&buf, "debug")

	ctx := logger.WithRequestID(context.Background(), "req-1")
	ctx = logger.WithOperation(ctx, "products", "list")
	ctx = logger.WithValue(ctx, logger.ContextKeyPage, 2)

	log.InfoContext(ctx, "fetching page", slog.Int("limit", 5))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "req-1", lines[0]["request_id"])
	assert.Equal(t, "products", lines[0]["resource"])
	assert.Equal(t, "list", lines[0]["operation"])
	assert.EqualValues(t, 2, lines[0]["page"])
	assert.EqualValues(t, 5, lines[0]["limit"])
	assert.Equal(t, "INFO", lines[0]["severity"])
	assert.Equal(t, "req-1", logger.RequestID(ctx))
}

func TestLogger_GeneratesRequestID(t *testing.T) {
	ctx := logger.WithRequestID(context.Background(), "")
	assert.Len(t, logger.RequestID(ctx), 36)
}

func TestLogger_Sanitizes(t *testing.T) {
	tests := []struct {
		name     string
		log      func(l *logger.Logger)
		key      string
		contains string
		absent   string
	}{
		{
			name:     "token_attribute",
			log:      func(l *logger.Logger) { l.Info("login", slog.String("token", "eyJabc")) },
			key:      "token",
			contains: "REDACTED",
			absent:   "eyJabc",
		},
		{
			name:     "authorization_header_in_message",
			log:      func(l *logger.Logger) { l.Info("sent Authorization: Bearer eyJabc.def") },
			key:      "msg",
			contains: "REDACTED",
			absent:   "eyJabc",
		},
		{
			name:     "email_in_value",
			log:      func(l *logger.Logger) { l.Info("login", slog.String("who", "ana@example.com")) },
			key:      "who",
			contains: "REDACTED",
			absent:   "ana@example.com",
		},
		{
			name:     "plain_values_untouched",
			log:      func(l *logger.Logger) { l.Info("listed", slog.String("resource", "products")) },
			key:      "resource",
			contains: "products",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newJSONLogger(&buf, "info"))

			lines := decodeLines(t, &buf)
			require.Len(t, lines, 1)
			value, _ := lines[0][tt.key].(string)
			assert.Contains(t, value, tt.contains)
			if tt.absent != "" {
				assert.NotContains(t, buf.String(), tt.absent)
			}
		})
	}
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := newJSONLogger(&buf, "warn")
	log.Info("hidden")
	log.Warn("shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["msg"])

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("nonsense"))
}

func TestLogger_SamplingKeepsWarnings(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.LogConfig{Level: "debug", Format: "json", Output: &buf, SampleRate: 1e-12})

	for i := 0; i < 50; i++ {
		log.Debug("noise", slog.Int("i", i))
	}
	log.Warn("kept")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["msg"])
	assert.Equal(t, 1e-12, lines[0]["sample_rate"])
}

func TestPrettyTextHandler(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.LogConfig{Level: "debug", Format: "text", Output: &buf})
	log.With(slog.String("component", "cli")).Debug("ready", slog.Int("page", 1))

	out := buf.String()
	assert.Contains(t, out, "ready")
	assert.Contains(t, out, "component=cli")
	assert.Contains(t, out, "page=1")
}
