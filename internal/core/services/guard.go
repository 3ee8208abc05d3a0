// internal/core/services/guard.go
package services

import (
	"context"
	"fmt"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

// RouteGuard gates protected commands on the presence of a stored token.
// It never validates the token itself.
type RouteGuard struct {
	sessions ports.SessionReader
}

// NewRouteGuard creates a guard over the session store
func NewRouteGuard(sessions ports.SessionReader) *RouteGuard {
	return &RouteGuard{sessions: sessions}
}

// Allow reports whether a non-empty token is stored
func (g *RouteGuard) Allow(ctx context.Context) bool {
	return g.Require(ctx) == nil
}

// Require returns domain.ErrLoginRequired unless a token is stored
func (g *RouteGuard) Require(ctx context.Context) error {
	session, err := g.sessions.Get(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLoginRequired, err)
	}
	if !session.Authenticated() {
		return domain.ErrLoginRequired
	}
	return nil
}
