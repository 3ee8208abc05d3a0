// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ammerola/stockdesk/internal/adapters/memstore"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// pagination mirrors the metadata block the client decodes
type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// listResponse is the {data, pagination} envelope of every collection
type listResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination pagination `json:"pagination"`
}

func newListResponse[T any](items []T, total int, params memstore.QueryParams) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	pages := (total + params.Limit - 1) / params.Limit
	if pages < 1 {
		pages = 1
	}
	return listResponse[T]{
		Data: items,
		Pagination: pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: pages,
		},
	}
}

// parseListParams reads page, limit and search from the query string
func parseListParams(r *http.Request) memstore.QueryParams {
	params := memstore.QueryParams{Page: 1, Limit: defaultLimit}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			params.Limit = min(l, maxLimit)
		}
	}

	params.Search = r.URL.Query().Get("search")
	return params
}

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func respondMessage(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"message": message})
}

// respondStoreError maps store errors onto status codes with the given messages
func respondStoreError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, notFound string) {
	switch {
	case errors.Is(err, memstore.ErrNotFound):
		respondMessage(w, logger, http.StatusNotFound, notFound)
	case errors.Is(err, memstore.ErrInsufficientStock):
		respondMessage(w, logger, http.StatusBadRequest, "Stock insuficiente")
	case errors.Is(err, memstore.ErrCategoryInUse):
		respondMessage(w, logger, http.StatusConflict, "No se puede eliminar una categoria con productos")
	case errors.Is(err, memstore.ErrDuplicateSKU):
		respondMessage(w, logger, http.StatusConflict, "El SKU ya existe")
	case errors.Is(err, memstore.ErrDuplicateEmail):
		respondMessage(w, logger, http.StatusConflict, "El email ya esta registrado")
	default:
		logger.ErrorContext(r.Context(), "store operation failed",
			slog.String("error", err.Error()))
		respondMessage(w, logger, http.StatusInternalServerError, "Error interno del servidor")
	}
}
