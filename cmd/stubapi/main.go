// cmd/stubapi/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/ammerola/stockdesk/internal/adapters/export"
	"github.com/ammerola/stockdesk/internal/adapters/memstore"
	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/handlers"
	"github.com/ammerola/stockdesk/internal/pkg/config"
	"github.com/ammerola/stockdesk/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	flags := pflag.NewFlagSet("stubapi", pflag.ExitOnError)
	flags.String("host", "", "listen host")
	flags.String("port", "", "listen port")
	flags.String("seed", "", "xlsx file with products to load at startup")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json)")
	_ = flags.Parse(os.Args[1:])

	slogger := logger.SetupLogger("info", "text", 1).Logger

	cfg, err := config.Load(slogger, flags)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat, cfg.App.LogSampleRate).Logger
	slogger.Info("starting stockdesk stub API",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, tokens, err := initializeStore(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	server := &http.Server{
		Addr: cfg.GetStubAddress(),
		Handler: handlers.NewRouter(store, tokens, handlers.RouterConfig{
			Version:           Version,
			Environment:       cfg.App.Environment,
			RateLimitRequests: cfg.Stub.RateLimitRequests,
			RateLimitDuration: cfg.Stub.RateLimitDuration,
			AllowedOrigins:    cfg.Stub.AllowedOrigins,
			TrustedProxies:    cfg.Stub.TrustedProxies,
		}, slogger),
		ReadTimeout:  cfg.Stub.ReadTimeout,
		WriteTimeout: cfg.Stub.WriteTimeout,
		IdleTimeout:  cfg.Stub.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		slogger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Stub.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			_ = server.Close()
		}
		slogger.Info("server shutdown complete")
	}
}

// initializeStore creates the store with the admin account and optional seed data
func initializeStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*memstore.Store, *handlers.Tokens, error) {
	store := memstore.New(logger)
	tokens := handlers.NewTokens(cfg.Stub.JWTSecret, cfg.Stub.JWTExpiration)

	auth := handlers.NewAuthHandler(store, tokens, logger)
	admin := domain.User{Name: cfg.Stub.AdminName, Email: cfg.Stub.AdminEmail, Role: domain.RoleAdmin}
	if _, err := auth.CreateAccount(ctx, admin, cfg.Stub.AdminPassword); err != nil {
		return nil, nil, fmt.Errorf("failed to create admin account: %w", err)
	}
	logger.Info("admin account ready", slog.String("email", cfg.Stub.AdminEmail))

	if cfg.Stub.SeedFile == "" {
		return store, tokens, nil
	}

	data, err := os.ReadFile(cfg.Stub.SeedFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	rows, rowErrs, err := export.ReadProducts(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	created, saveErrs := store.Seed(ctx, rows)
	for _, e := range append(rowErrs, saveErrs...) {
		logger.Warn("seed row skipped", slog.String("error", e.Error()))
	}
	logger.Info("seed file loaded",
		slog.String("file", cfg.Stub.SeedFile),
		slog.Int("products", created))

	return store, tokens, nil
}
