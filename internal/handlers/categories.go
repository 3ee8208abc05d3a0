// internal/handlers/categories.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ammerola/stockdesk/internal/adapters/memstore"
	"github.com/ammerola/stockdesk/internal/core/domain"
)

const categoryNotFound = "Categoria no encontrada"

// CategoryHandler handles /categories requests
type CategoryHandler struct {
	store  *memstore.Store
	logger *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(store *memstore.Store, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		store:  store,
		logger: logger.With(slog.String("handler", "categories")),
	}
}

// List handles GET /categories?page&limit&search
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	items, total, err := h.store.FindAllCategories(r.Context(), params)
	if err != nil {
		respondStoreError(w, r, h.logger, err, categoryNotFound)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, newListResponse(items, total, params))
}

// Create handles POST /categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}

	c, err := h.store.SaveCategory(r.Context(), in.Name)
	if err != nil {
		respondStoreError(w, r, h.logger, err, categoryNotFound)
		return
	}

	h.logger.InfoContext(r.Context(), "category created",
		slog.String("category_id", c.ID.String()))

	respondJSON(w, h.logger, http.StatusCreated, c)
}

// Update handles PUT /categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decode(w, r)
	if !ok {
		return
	}

	c, err := h.store.UpdateCategory(r.Context(), domain.ID(r.PathValue("id")), in.Name)
	if err != nil {
		respondStoreError(w, r, h.logger, err, categoryNotFound)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, c)
}

// Delete handles DELETE /categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := domain.ID(r.PathValue("id"))

	if err := h.store.DeleteCategory(r.Context(), id); err != nil {
		respondStoreError(w, r, h.logger, err, categoryNotFound)
		return
	}

	h.logger.InfoContext(r.Context(), "category deleted",
		slog.String("category_id", id.String()))

	respondMessage(w, h.logger, http.StatusOK, "Categoria eliminada")
}

func (h *CategoryHandler) decode(w http.ResponseWriter, r *http.Request) (domain.CategoryInput, bool) {
	var in domain.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondMessage(w, h.logger, http.StatusBadRequest, "Cuerpo de solicitud invalido")
		return in, false
	}
	if err := in.Validate(); err != nil {
		respondMessage(w, h.logger, http.StatusBadRequest, "El nombre es obligatorio")
		return in, false
	}
	return in, true
}
