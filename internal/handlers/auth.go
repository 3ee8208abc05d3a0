// internal/handlers/auth.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/ammerola/stockdesk/internal/adapters/memstore"
	"github.com/ammerola/stockdesk/internal/core/domain"
)

// AuthHandler handles /auth requests
type AuthHandler struct {
	store  *memstore.Store
	tokens *Tokens
	cost   int
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(store *memstore.Store, tokens *Tokens, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		store:  store,
		tokens: tokens,
		cost:   bcrypt.DefaultCost,
		logger: logger.With(slog.String("handler", "auth")),
	}
}

// loginResponse is returned by a successful login
type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Register handles POST /auth/register. New accounts get the CLIENTE role.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.Registration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, h.logger, http.StatusBadRequest, "Cuerpo de solicitud invalido")
		return
	}
	req.ConfirmPassword = req.Password

	if err := req.Validate(); err != nil {
		respondMessage(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.CreateAccount(ctx, domain.User{Name: req.Name, Email: req.Email, Role: domain.RoleClient}, req.Password)
	if err != nil {
		respondStoreError(w, r, h.logger, err, "")
		return
	}

	h.logger.InfoContext(ctx, "account registered",
		slog.String("user_id", user.ID.String()))

	respondMessage(w, h.logger, http.StatusCreated, "Usuario registrado correctamente")
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, h.logger, http.StatusBadRequest, "Cuerpo de solicitud invalido")
		return
	}
	if err := req.Validate(); err != nil {
		respondMessage(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.store.FindAccount(ctx, req.Email)
	if err == nil {
		err = bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(req.Password))
	}
	if err != nil {
		if !errors.Is(err, memstore.ErrNotFound) && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			h.logger.ErrorContext(ctx, "login failed", slog.String("error", err.Error()))
		}
		respondMessage(w, h.logger, http.StatusUnauthorized, "Credenciales invalidas")
		return
	}

	token, err := h.tokens.Issue(account.User)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.String("error", err.Error()))
		respondMessage(w, h.logger, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, loginResponse{Token: token, User: account.User})
}

// CreateAccount hashes password and stores the account
func (h *AuthHandler) CreateAccount(ctx context.Context, user domain.User, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	return h.store.SaveAccount(ctx, user, hash)
}
