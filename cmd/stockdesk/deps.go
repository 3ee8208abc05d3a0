// cmd/stockdesk/deps.go
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/stockdesk/internal/adapters/export"
	"github.com/ammerola/stockdesk/internal/adapters/httpapi"
	"github.com/ammerola/stockdesk/internal/adapters/repl"
	"github.com/ammerola/stockdesk/internal/adapters/session"
	"github.com/ammerola/stockdesk/internal/adapters/storage"
	"github.com/ammerola/stockdesk/internal/core/ports"
	"github.com/ammerola/stockdesk/internal/core/services"
	"github.com/ammerola/stockdesk/internal/pkg/config"
)

// dependencies holds everything a command needs
type dependencies struct {
	redisClient *redis.Client
	sessions    ports.SessionStore
	console     *repl.Console
	app         repl.App
	shell       *repl.Shell
}

func (d *dependencies) cleanup() {
	if d.redisClient != nil {
		d.redisClient.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, assumeYes bool, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	sessions, err := initializeSessions(ctx, cfg, deps, logger)
	if err != nil {
		deps.cleanup()
		return nil, err
	}
	deps.sessions = sessions

	deps.console = repl.NewConsole(in, out)
	deps.console.AssumeYes = assumeYes

	// The unauthorized hook needs the auth service, which needs the client
	var auth *services.AuthService
	client, err := httpapi.NewClient(cfg.API.BaseURL, sessions, logger,
		httpapi.WithTimeout(cfg.API.Timeout),
		httpapi.WithUserAgent(cfg.API.UserAgent),
		httpapi.WithUnauthorizedHandler(func(ctx context.Context) {
			auth.HandleUnauthorized(ctx)
		}),
	)
	if err != nil {
		deps.cleanup()
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	productGateway := httpapi.NewProductGateway(client)
	categoryGateway := httpapi.NewCategoryGateway(client)
	auth = services.NewAuthService(httpapi.NewAuthGateway(client), sessions, logger)

	images, err := initializeImages(ctx, cfg, logger)
	if err != nil {
		deps.cleanup()
		return nil, err
	}

	deps.app = repl.App{
		Products: services.NewProductController(productGateway, categoryGateway,
			deps.console, deps.console, logger, cfg.API.PageSize),
		Categories: services.NewCategoryController(categoryGateway,
			deps.console, deps.console, logger, cfg.API.PageSize),
		Auth:      auth,
		Guard:     services.NewRouteGuard(sessions),
		Dashboard: services.NewDashboard(productGateway, categoryGateway, auth, cfg.API.PageSize, logger),
		Images:    images,
		Exporter:  export.NewWriter,
	}
	deps.shell = repl.NewShell(deps.app, deps.console, logger)

	logger.Debug("dependencies initialized",
		slog.String("api_url", client.BaseURL()),
		slog.String("session_backend", cfg.Session.Backend))

	return deps, nil
}

func initializeSessions(ctx context.Context, cfg *config.Config, deps *dependencies, logger *slog.Logger) (ports.SessionStore, error) {
	switch cfg.Session.Backend {
	case config.BackendMemory:
		return session.NewMemoryStore(), nil

	case config.BackendRedis:
		logger.Debug("connecting to Redis",
			slog.String("host", cfg.Redis.Host),
			slog.String("port", cfg.Redis.Port),
		)

		redisClient := redis.NewClient(&redis.Options{
			Addr:            cfg.GetRedisAddress(),
			Password:        cfg.Redis.Password,
			DB:              cfg.Redis.DB,
			MaxRetries:      cfg.Redis.MaxRetries,
			MinRetryBackoff: cfg.Redis.MinRetryBackoff,
			MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
			DialTimeout:     cfg.Redis.DialTimeout,
			ReadTimeout:     cfg.Redis.ReadTimeout,
			WriteTimeout:    cfg.Redis.WriteTimeout,
			PoolSize:        cfg.Redis.PoolSize,
			MinIdleConns:    cfg.Redis.MinIdleConns,
			PoolTimeout:     cfg.Redis.PoolTimeout,
		})
		deps.redisClient = redisClient

		store := session.NewRedisStore(redisClient, cfg.Session.KeyPrefix, logger)
		if err := store.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return store, nil

	default:
		path := cfg.Session.File
		if path == "" {
			p, err := session.DefaultPath()
			if err != nil {
				return nil, fmt.Errorf("failed to resolve session file: %w", err)
			}
			path = p
		}
		return session.NewFileStore(path, logger), nil
	}
}

// initializeImages serves local paths always and s3:// references when AWS is configured
func initializeImages(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.ImageSource, error) {
	local := storage.NewLocalSource(logger)
	if cfg.AWS.AccessKeyID == "" && cfg.AWS.S3Endpoint == "" {
		return storage.NewResolver(local, nil), nil
	}

	remote, err := storage.NewS3Source(ctx, &storage.S3Config{
		Region:          cfg.AWS.Region,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.S3Endpoint,
		UsePathStyle:    cfg.AWS.UsePathStyle,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 image source: %w", err)
	}
	return storage.NewResolver(local, remote), nil
}
