// test/helpers/helpers.go
package helpers

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/ammerola/stockdesk/internal/adapters/session"
	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/pkg/config"
)

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// NewMemorySessionStore returns an empty in-memory session store
func NewMemorySessionStore() *session.MemoryStore {
	return session.NewMemoryStore()
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:          "stockdesk-test",
			Environment:   "test",
			Version:       "test",
			LogLevel:      "debug",
			LogFormat:     "text",
			LogSampleRate: 1,
			Debug:         true,
		},
		API: config.APIConfig{
			BaseURL:   "http://localhost:3000/api",
			PageSize:  domain.DefaultPageSize,
			UserAgent: "stockdesk-test",
		},
		Session: config.SessionConfig{
			Backend:   "memory",
			KeyPrefix: "stockdesk:test",
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			DB:       0,
			PoolSize: 10,
		},
		Stub: config.StubConfig{
			Host:              "localhost",
			Port:              "3000",
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   5 * time.Second,
			JWTSecret:         "test-secret",
			JWTExpiration:     24 * time.Hour,
			RateLimitRequests: 1000,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			AdminEmail:        "admin@stockdesk.test",
			AdminPassword:     "admin123",
			AdminName:         "Admin",
		},
	}
}

// CreateTestProduct creates a test product
func CreateTestProduct(overrides ...func(*domain.Product)) *domain.Product {
	product := &domain.Product{
		ID:         "1",
		Name:       "Teclado mecanico",
		Price:      decimal.NewFromFloat(45.90),
		Stock:      10,
		SKU:        "KB-001",
		CategoryID: "1",
		Category:   &domain.Category{ID: "1", Name: "Perifericos"},
	}

	for _, override := range overrides {
		override(product)
	}

	return product
}
