// internal/adapters/session/redis.go
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

// DefaultKeyPrefix namespaces the session keys
const DefaultKeyPrefix = "stockdesk:session"

// RedisStore keeps the session in Redis so several terminals share one login.
// Keys never expire; the server decides when a token is no longer valid.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

var _ ports.SessionStore = (*RedisStore)(nil)

// NewRedisStore creates a store over client
func NewRedisStore(client *redis.Client, prefix string, logger *slog.Logger) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		logger: logger.With(slog.String("component", "session_redis")),
	}
}

// BuildKey creates a key under prefix
func BuildKey(prefix string, parts ...string) string {
	key := prefix
	for _, part := range parts {
		key += ":" + part
	}
	return key
}

func (s *RedisStore) tokenKey() string { return BuildKey(s.prefix, domain.KeyToken) }
func (s *RedisStore) userKey() string  { return BuildKey(s.prefix, domain.KeyUser) }

func (s *RedisStore) Get(ctx context.Context) (domain.Session, error) {
	values, err := s.client.MGet(ctx, s.tokenKey(), s.userKey()).Result()
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read session", slog.String("error", err.Error()))
		return domain.Session{}, fmt.Errorf("redis mget error: %w", err)
	}

	var session domain.Session
	if token, ok := values[0].(string); ok {
		session.Token = token
	}
	if raw, ok := values[1].(string); ok {
		user, err := decodeUser(raw)
		if err != nil {
			s.logger.WarnContext(ctx, "stored user is corrupt, ignoring",
				slog.String("key", s.userKey()),
				slog.String("error", err.Error()))
		}
		session.User = user
	}

	return session, nil
}

func (s *RedisStore) Set(ctx context.Context, session domain.Session) error {
	user, err := encodeUser(session.User)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.tokenKey(), session.Token, 0)
		pipe.Set(ctx, s.userKey(), user, 0)
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to store session", slog.String("error", err.Error()))
		return fmt.Errorf("redis set error: %w", err)
	}

	s.logger.DebugContext(ctx, "session stored", slog.String("prefix", s.prefix))
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.tokenKey(), s.userKey()).Err(); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear session", slog.String("error", err.Error()))
		return fmt.Errorf("redis del error: %w", err)
	}

	s.logger.DebugContext(ctx, "session cleared", slog.String("prefix", s.prefix))
	return nil
}

// Ping checks connectivity
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
