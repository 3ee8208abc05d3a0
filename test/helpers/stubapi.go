// test/helpers/stubapi.go
package helpers

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockdesk/internal/adapters/memstore"
	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/handlers"
)

const (
	StubAdminEmail     = "admin@stockdesk.test"
	StubAdminPassword  = "admin-password"
	StubClientEmail    = "client@stockdesk.test"
	StubClientPassword = "client-password"
	stubJWTSecret      = "test-secret-key-that-is-long-enough-32"
)

// StubAPI is a running in-memory API server
type StubAPI struct {
	Server *httptest.Server
	Store  *memstore.Store
	Tokens *handlers.Tokens
}

// BaseURL is the API root the client is configured with
func (s *StubAPI) BaseURL() string {
	return s.Server.URL + "/api"
}

// Token issues a token for a user without going through login
func (s *StubAPI) Token(t *testing.T, u domain.User) string {
	t.Helper()
	token, err := s.Tokens.Issue(u)
	require.NoError(t, err)
	return token
}

// StartStubAPI starts the stub API with one admin and one client account
func StartStubAPI(t *testing.T) *StubAPI {
	t.Helper()

	logger := TestLogger()
	store := memstore.New(logger)
	tokens := handlers.NewTokens(stubJWTSecret, time.Hour)

	auth := handlers.NewAuthHandler(store, tokens, logger)
	ctx := context.Background()
	_, err := auth.CreateAccount(ctx, domain.User{Name: "Admin", Email: StubAdminEmail, Role: domain.RoleAdmin}, StubAdminPassword)
	require.NoError(t, err)
	_, err = auth.CreateAccount(ctx, domain.User{Name: "Cliente", Email: StubClientEmail, Role: domain.RoleClient}, StubClientPassword)
	require.NoError(t, err)

	server := httptest.NewServer(handlers.NewRouter(store, tokens, handlers.RouterConfig{
		Version:        "test",
		Environment:    "test",
		AllowedOrigins: []string{"*"},
	}, logger))
	t.Cleanup(server.Close)

	return &StubAPI{Server: server, Store: store, Tokens: tokens}
}
