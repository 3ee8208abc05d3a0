// internal/core/services/auth.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

// AuthService owns the session lifecycle: login writes it, logout erases it
type AuthService struct {
	gateway ports.AuthGateway
	store   ports.SessionStore
	logger  *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(gateway ports.AuthGateway, store ports.SessionStore, logger *slog.Logger) *AuthService {
	return &AuthService{
		gateway: gateway,
		store:   store,
		logger:  logger.With(slog.String("service", "auth")),
	}
}

// Login exchanges credentials for a session and persists it
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	session, err := s.gateway.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if session == nil || !session.Authenticated() {
		return nil, errors.New("login failed: server returned no token")
	}

	if err := s.store.Set(ctx, *session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.InfoContext(ctx, "logged in",
		slog.String("user", session.User.Name),
		slog.String("role", string(session.User.Role)))

	return &session.User, nil
}

// Register creates a new account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) error {
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.gateway.Register(ctx, reg); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	s.logger.InfoContext(ctx, "registered account", slog.String("user", reg.Name))
	return nil
}

// Logout erases the stored token and user
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.logger.InfoContext(ctx, "logged out")
	return nil
}

// CurrentUser returns the stored profile, or the guest user when none is usable
func (s *AuthService) CurrentUser(ctx context.Context) domain.User {
	session, err := s.store.Get(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read session", slog.String("error", err.Error()))
		return domain.GuestUser()
	}
	if !session.Authenticated() || session.User.Name == "" {
		return domain.GuestUser()
	}
	return session.User
}

// HandleUnauthorized drops a session the server no longer accepts so the next
// guarded command sends the user back to login.
func (s *AuthService) HandleUnauthorized(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear rejected session", slog.String("error", err.Error()))
		return
	}
	s.logger.WarnContext(ctx, "session rejected by server, cleared stored credential")
}
