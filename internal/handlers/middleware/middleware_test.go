package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/handlers/middleware"
	"github.com/ammerola/stockdesk/internal/pkg/logger"
	"github.com/ammerola/stockdesk/test/helpers"
)

func ok() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	wrapped := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name              string
		existingRequestID string
		validate          func(*testing.T, *http.Response)
	}{
		{
			name: "generates_new_request_id",
			validate: func(t *testing.T, resp *http.Response) {
				requestID := resp.Header.Get("X-Request-ID")
				assert.Len(t, requestID, 36)
				assert.Equal(t, requestID, seen)
			},
		},
		{
			name:              "uses_existing_request_id",
			existingRequestID: "existing-id-123",
			validate: func(t *testing.T, resp *http.Response) {
				assert.Equal(t, "existing-id-123", resp.Header.Get("X-Request-ID"))
				assert.Equal(t, "existing-id-123", seen)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.existingRequestID != "" {
				req.Header.Set("X-Request-ID", tt.existingRequestID)
			}
			w := httptest.NewRecorder()

			wrapped.ServeHTTP(w, req)
			tt.validate(t, w.Result())
		})
	}
}

func TestLogger(t *testing.T) {
	wrapped := middleware.Logger(helpers.TestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("test response"))
	}))

	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test response", w.Body.String())
}

func TestRecovery(t *testing.T) {
	tests := []struct {
		name           string
		handler        http.HandlerFunc
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "recovers_from_panic",
			handler: func(w http.ResponseWriter, r *http.Request) {
				panic("test panic")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"Error interno del servidor"`,
		},
		{
			name: "passes_through_normal_response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("normal response"))
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "normal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := middleware.Recovery(helpers.TestLogger())(tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req = req.WithContext(logger.WithRequestID(req.Context(), "test-123"))
			w := httptest.NewRecorder()

			wrapped.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestRateLimit(t *testing.T) {
	wrapped := middleware.RateLimit(2, time.Second, nil)(ok())

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("127.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("127.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("127.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("192.168.1.1:5678"))
}

func TestRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	wrapped := middleware.RateLimit(1, time.Second, nil)(ok())

	send := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		req.Header.Set("X-Forwarded-For", forwardedFor)
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.2"))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name         string
		remoteAddr   string
		forwardedFor string
		realIP       string
		trusted      []string
		want         string
	}{
		{name: "untrusted_peer_uses_socket", remoteAddr: "203.0.113.9:4000", forwardedFor: "10.0.0.1", want: "203.0.113.9"},
		{name: "trusted_proxy_uses_first_hop", remoteAddr: "127.0.0.1:4000", forwardedFor: "10.0.0.1, 127.0.0.1", trusted: []string{"127.0.0.1"}, want: "10.0.0.1"},
		{name: "trusted_proxy_real_ip", remoteAddr: "127.0.0.1:4000", realIP: "10.0.0.7", trusted: []string{"127.0.0.1"}, want: "10.0.0.7"},
		{name: "trusted_proxy_without_headers", remoteAddr: "127.0.0.1:4000", trusted: []string{"127.0.0.1"}, want: "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.forwardedFor)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			assert.Equal(t, tt.want, middleware.ClientIP(tt.trusted)(req))
		})
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		requestOrigin  string
		requestMethod  string
		expectedStatus int
		expectedOrigin string
	}{
		{
			name:           "allows_wildcard_origin",
			allowedOrigins: []string{"*"},
			requestOrigin:  "https://example.com",
			requestMethod:  http.MethodGet,
			expectedStatus: http.StatusOK,
			expectedOrigin: "https://example.com",
		},
		{
			name:           "handles_preflight_request",
			allowedOrigins: []string{"http://localhost:5173"},
			requestOrigin:  "http://localhost:5173",
			requestMethod:  http.MethodOptions,
			expectedStatus: http.StatusNoContent,
			expectedOrigin: "http://localhost:5173",
		},
		{
			name:           "blocks_unallowed_origin",
			allowedOrigins: []string{"https://allowed.com"},
			requestOrigin:  "https://notallowed.com",
			requestMethod:  http.MethodGet,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := middleware.CORS(tt.allowedOrigins)(ok())

			req := httptest.NewRequest(tt.requestMethod, "/test", nil)
			req.Header.Set("Origin", tt.requestOrigin)
			w := httptest.NewRecorder()

			wrapped.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

type staticVerifier map[string]domain.User

func (v staticVerifier) Verify(token string) (domain.User, error) {
	u, ok := v[token]
	if !ok {
		return domain.User{}, errors.New("bad token")
	}
	return u, nil
}

func TestAuthenticateAndRequireAdmin(t *testing.T) {
	verifier := staticVerifier{
		"admin":  {Name: "Ana", Email: "ana@example.com", Role: domain.RoleAdmin},
		"client": {Name: "Luis", Role: domain.RoleClient},
	}

	var user domain.User
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var found bool
		user, found = middleware.UserFromContext(r.Context())
		require.True(t, found)
		w.WriteHeader(http.StatusOK)
	})
	wrapped := middleware.Chain(inner, middleware.Authenticate(verifier), middleware.RequireAdmin)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{name: "admin_passes", header: "Bearer admin", expectedStatus: http.StatusOK},
		{name: "client_is_forbidden", header: "Bearer client", expectedStatus: http.StatusForbidden},
		{name: "unknown_token", header: "Bearer nope", expectedStatus: http.StatusUnauthorized},
		{name: "missing_header", expectedStatus: http.StatusUnauthorized},
		{name: "wrong_scheme", header: "Basic admin", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			wrapped.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "Ana", user.Name)
			} else {
				assert.Contains(t, w.Body.String(), `"message"`)
			}
		})
	}
}
