// internal/pkg/logger/handlers.go
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"
)

// ContextHandler extracts values from context and adds them to log records
type ContextHandler struct {
	handler slog.Handler
	keys    []ContextKey
}

// NewContextHandler creates a handler that enriches logs with context values
func NewContextHandler(handler slog.Handler, keys []ContextKey) *ContextHandler {
	return &ContextHandler{handler: handler, keys: keys}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if attrs := extractContextAttrs(ctx, h.keys); len(attrs) > 0 {
		record = record.Clone()
		record.AddAttrs(attrs...)
	}
	return h.handler.Handle(ctx, record)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs), keys: h.keys}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name), keys: h.keys}
}

// SamplingHandler drops a share of debug and info records
type SamplingHandler struct {
	handler    slog.Handler
	sampleRate float64
	mu         *sync.Mutex
	rng        *rand.Rand
}

// NewSamplingHandler creates a handler that samples logs
func NewSamplingHandler(handler slog.Handler, sampleRate float64) *SamplingHandler {
	return &SamplingHandler{
		handler:    handler,
		sampleRate: sampleRate,
		mu:         &sync.Mutex{},
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (h *SamplingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	// Always log warnings and errors
	if level >= slog.LevelWarn {
		return h.handler.Enabled(ctx, level)
	}

	h.mu.Lock()
	sample := h.rng.Float64() < h.sampleRate
	h.mu.Unlock()

	return sample && h.handler.Enabled(ctx, level)
}

func (h *SamplingHandler) Handle(ctx context.Context, record slog.Record) error {
	record.AddAttrs(slog.Float64("sample_rate", h.sampleRate))
	return h.handler.Handle(ctx, record)
}

func (h *SamplingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SamplingHandler{handler: h.handler.WithAttrs(attrs), sampleRate: h.sampleRate, mu: h.mu, rng: h.rng}
}

func (h *SamplingHandler) WithGroup(name string) slog.Handler {
	return &SamplingHandler{handler: h.handler.WithGroup(name), sampleRate: h.sampleRate, mu: h.mu, rng: h.rng}
}

const redacted = "***REDACTED***"

type redaction struct {
	pattern     *regexp.Regexp
	replacement string
}

// SanitizationHandler masks credentials and email addresses
type SanitizationHandler struct {
	handler    slog.Handler
	redactions []redaction
	blacklist  []string
}

// NewSanitizationHandler creates a handler that sanitizes sensitive data
func NewSanitizationHandler(handler slog.Handler) *SanitizationHandler {
	return &SanitizationHandler{
		handler: handler,
		redactions: []redaction{
			{
				pattern:     regexp.MustCompile(`(?i)\b(bearer)\s+[A-Za-z0-9\-_.=]+`),
				replacement: "$1 " + redacted,
			},
			{
				pattern:     regexp.MustCompile(`(?i)(password|secret|token|authorization|jwt)\s*[:=]\s*["']?([^"'\s,}]+)`),
				replacement: "$1=" + redacted,
			},
			{
				pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
				replacement: redacted,
			},
		},
		blacklist: []string{
			"password", "secret", "token", "authorization", "jwt", "api_key",
		},
	}
}

func (h *SanitizationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *SanitizationHandler) Handle(ctx context.Context, record slog.Record) error {
	sanitized := slog.NewRecord(record.Time, record.Level, h.sanitizeString(record.Message), record.PC)

	record.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(h.sanitizeAttr(a))
		return true
	})

	return h.handler.Handle(ctx, sanitized)
}

func (h *SanitizationHandler) sanitizeAttr(attr slog.Attr) slog.Attr {
	lowerKey := strings.ToLower(attr.Key)
	for _, blacklisted := range h.blacklist {
		if strings.Contains(lowerKey, blacklisted) {
			return slog.String(attr.Key, redacted)
		}
	}

	switch attr.Value.Kind() {
	case slog.KindString:
		attr.Value = slog.StringValue(h.sanitizeString(attr.Value.String()))
	case slog.KindGroup:
		group := attr.Value.Group()
		clean := make([]slog.Attr, len(group))
		for i, a := range group {
			clean[i] = h.sanitizeAttr(a)
		}
		attr.Value = slog.GroupValue(clean...)
	}

	return attr
}

func (h *SanitizationHandler) sanitizeString(s string) string {
	for _, r := range h.redactions {
		s = r.pattern.ReplaceAllString(s, r.replacement)
	}
	return s
}

func (h *SanitizationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = h.sanitizeAttr(a)
	}
	return &SanitizationHandler{handler: h.handler.WithAttrs(clean), redactions: h.redactions, blacklist: h.blacklist}
}

func (h *SanitizationHandler) WithGroup(name string) slog.Handler {
	return &SanitizationHandler{handler: h.handler.WithGroup(name), redactions: h.redactions, blacklist: h.blacklist}
}

// MultiHandler sends logs to multiple handlers
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler creates a handler that sends to multiple destinations
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *MultiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: next}
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		next[i] = handler.WithGroup(name)
	}
	return &MultiHandler{handlers: next}
}

// PrettyTextHandler provides human-readable colored output for terminals
type PrettyTextHandler struct {
	opts   *slog.HandlerOptions
	attrs  []slog.Attr
	prefix string
	mu     *sync.Mutex
	w      io.Writer
}

// NewPrettyTextHandler creates a pretty text handler
func NewPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyTextHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyTextHandler{opts: opts, mu: &sync.Mutex{}, w: w}
}

func (h *PrettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *PrettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	const reset = "\033[0m"

	var b strings.Builder
	level := r.Level.String()
	fmt.Fprintf(&b, "%s%s %s%s%s %s",
		levelColor(r.Level),
		r.Time.Format("2006-01-02 15:04:05.000"),
		level,
		reset,
		strings.Repeat(" ", max(0, 6-len(level))),
		r.Message,
	)

	write := func(a slog.Attr) {
		if h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(nil, a)
		}
		if a.Equal(slog.Attr{}) {
			return
		}
		fmt.Fprintf(&b, " \033[36m%s%s=%v%s", h.prefix, a.Key, a.Value, reset)
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		write(a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *PrettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *PrettyTextHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "\033[31m" // Red
	case level >= slog.LevelWarn:
		return "\033[33m" // Yellow
	case level >= slog.LevelInfo:
		return "\033[34m" // Blue
	default:
		return "\033[37m" // White
	}
}
