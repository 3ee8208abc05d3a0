// internal/handlers/router.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ammerola/stockdesk/internal/adapters/memstore"
	"github.com/ammerola/stockdesk/internal/handlers/middleware"
)

// RouterConfig holds what the stub API needs beyond the store
type RouterConfig struct {
	Version           string
	Environment       string
	RateLimitRequests int
	RateLimitDuration time.Duration
	AllowedOrigins    []string
	TrustedProxies    []string
}

// NewRouter mounts the stub API under /api. Reads need a token; writes need
// an ADMIN token.
func NewRouter(store *memstore.Store, tokens *Tokens, cfg RouterConfig, logger *slog.Logger) http.Handler {
	auth := NewAuthHandler(store, tokens, logger)
	products := NewProductHandler(store, logger)
	categories := NewCategoryHandler(store, logger)
	health := NewHealthHandler(store, cfg.Version, cfg.Environment, logger)

	authed := middleware.Authenticate(tokens)
	reader := func(h http.HandlerFunc) http.Handler { return authed(h) }
	admin := func(h http.HandlerFunc) http.Handler { return authed(middleware.RequireAdmin(h)) }

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("POST /api/auth/login", auth.Login)
	mux.HandleFunc("POST /api/auth/register", auth.Register)

	mux.Handle("GET /api/products", reader(products.List))
	mux.Handle("GET /api/products/{id}", reader(products.Get))
	mux.Handle("GET /api/products/{id}/movements", reader(products.Movements))
	mux.Handle("POST /api/products", admin(products.Create))
	mux.Handle("PUT /api/products/{id}", admin(products.Update))
	mux.Handle("DELETE /api/products/{id}", admin(products.Delete))
	mux.Handle("POST /api/products/{id}/sell", admin(products.Sell))
	mux.Handle("POST /api/products/{id}/add-stock", admin(products.AddStock))

	mux.Handle("GET /api/categories", reader(categories.List))
	mux.Handle("POST /api/categories", admin(categories.Create))
	mux.Handle("PUT /api/categories/{id}", admin(categories.Update))
	mux.Handle("DELETE /api/categories/{id}", admin(categories.Delete))

	mws := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.SecureHeaders,
		middleware.CORS(cfg.AllowedOrigins),
	}
	if cfg.RateLimitRequests > 0 && cfg.RateLimitDuration > 0 {
		mws = append(mws, middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitDuration, cfg.TrustedProxies))
	}

	return middleware.Chain(mux, mws...)
}
