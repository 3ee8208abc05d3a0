// internal/handlers/middleware/middleware.go
package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/pkg/logger"
)

const slowRequest = 2 * time.Second

// Chain applies middlewares so that the first one listed runs first
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// RequestID middleware adds a unique request ID to each request
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Clients send their own id so both logs share it
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := logger.WithRequestID(r.Context(), requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logger logs one line per request with its status and duration
func Logger(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := r.Context()
			ctx = logger.WithValue(ctx, logger.ContextKeyMethod, r.Method)
			ctx = logger.WithValue(ctx, logger.ContextKeyPath, r.URL.Path)

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))
			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			duration := time.Since(start)

			level := slog.LevelInfo
			switch {
			case rec.status >= 500:
				level = slog.LevelError
			case rec.status >= 400, duration > slowRequest:
				level = slog.LevelWarn
			}

			l.Log(ctx, level, "request_completed",
				slog.Group("request",
					slog.String("query", r.URL.RawQuery),
					slog.String("remote_addr", remoteHost(r)),
					slog.String("forwarded_for", r.Header.Get("X-Forwarded-For")),
					slog.String("user_agent", r.UserAgent()),
				),
				slog.Group("response",
					slog.Int("status", rec.status),
					slog.Int("bytes", rec.bytes),
					slog.Int64("duration_ms", duration.Milliseconds()),
				),
			)
		})
	}
}

// Recovery middleware recovers from panics
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					requestID := logger.RequestID(r.Context())

					l.ErrorContext(r.Context(), "panic recovered",
						slog.Any("error", err),
						slog.String("stack", string(debug.Stack())),
					)

					writeMessage(w, http.StatusInternalServerError, "Error interno del servidor", requestID)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit allows requests per period for each caller address, as resolved
// by ClientIP(trustedProxies)
func RateLimit(requests int, per time.Duration, trustedProxies []string) func(http.Handler) http.Handler {
	limiters := &sync.Map{}
	clientIP := ClientIP(trustedProxies)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			val, _ := limiters.LoadOrStore(ip, rate.NewLimiter(rate.Every(per/time.Duration(requests)), requests))
			if !val.(*rate.Limiter).Allow() {
				writeMessage(w, http.StatusTooManyRequests, "Demasiadas solicitudes, intente mas tarde", "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORS answers preflight requests and echoes allowed origins. A "*" entry
// allows any origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	anyOrigin := slices.Contains(allowedOrigins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" && (anyOrigin || slices.Contains(allowedOrigins, origin)) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization, X-Request-ID")
				h.Set("Access-Control-Max-Age", "86400")
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Verifier turns a bearer token into the user it was issued to
type Verifier interface {
	Verify(token string) (domain.User, error)
}

type userKey struct{}

// WithUser stores the authenticated user in ctx
func WithUser(ctx context.Context, u domain.User) context.Context {
	ctx = context.WithValue(ctx, userKey{}, u)
	return logger.WithValue(ctx, logger.ContextKeyUser, u.Email)
}

// UserFromContext returns the user stored by Authenticate
func UserFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userKey{}).(domain.User)
	return u, ok
}

// Authenticate rejects requests without a valid bearer token
func Authenticate(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeMessage(w, http.StatusUnauthorized, "Token no proporcionado", "")
				return
			}

			user, err := v.Verify(strings.TrimSpace(token))
			if err != nil {
				writeMessage(w, http.StatusUnauthorized, "Token invalido o expirado", "")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAdmin lets only ADMIN users through. It must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || !user.IsAdmin() {
			writeMessage(w, http.StatusForbidden, "Acceso denegado: se requiere rol ADMIN", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SecureHeaders middleware adds security headers
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func writeMessage(w http.ResponseWriter, status int, message, requestID string) {
	body := map[string]string{"message": message}
	if requestID != "" {
		body["request_id"] = requestID
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// statusRecorder remembers the status and body size for the access log
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rec *statusRecorder) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
		rec.ResponseWriter.WriteHeader(code)
	}
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	rec.WriteHeader(http.StatusOK)
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}

// ClientIP returns a resolver for the caller address. X-Forwarded-For and
// X-Real-IP are honoured only when the socket peer is a trusted proxy.
func ClientIP(trustedProxies []string) func(*http.Request) string {
	return func(r *http.Request) string {
		peer := remoteHost(r)
		if !slices.Contains(trustedProxies, peer) {
			return peer
		}
		if first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ","); strings.TrimSpace(first) != "" {
			return strings.TrimSpace(first)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return xri
		}
		return peer
	}
}

func remoteHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
