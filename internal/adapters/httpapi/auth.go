// internal/adapters/httpapi/auth.go
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

// AuthGateway talks to /auth
type AuthGateway struct {
	client *Client
}

var _ ports.AuthGateway = (*AuthGateway)(nil)

// NewAuthGateway creates a new auth gateway
func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

// Login handles POST /auth/login
func (g *AuthGateway) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	req, err := jsonRequest(http.MethodPost, creds, "auth", "login")
	if err != nil {
		return nil, err
	}
	req.anonymous = true
	req.fallback = "Invalid email or password"

	body, err := g.client.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	return &session, nil
}

// Register handles POST /auth/register
func (g *AuthGateway) Register(ctx context.Context, reg domain.Registration) error {
	req, err := jsonRequest(http.MethodPost, reg, "auth", "register")
	if err != nil {
		return err
	}
	req.anonymous = true
	req.fallback = "Could not create account"

	_, err = g.client.do(ctx, req)
	return err
}
