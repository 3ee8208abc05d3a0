// internal/handlers/products.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ammerola/stockdesk/internal/adapters/memstore"
	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/handlers/middleware"
)

const (
	productNotFound = "Producto no encontrado"
	maxUploadBytes  = 6 << 20
)

// ProductHandler handles /products requests
type ProductHandler struct {
	store  *memstore.Store
	logger *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(store *memstore.Store, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		store:  store,
		logger: logger.With(slog.String("handler", "products")),
	}
}

// List handles GET /products?page&limit&search
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	items, total, err := h.store.FindAllProducts(r.Context(), params)
	if err != nil {
		respondStoreError(w, r, h.logger, err, productNotFound)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, newListResponse(items, total, params))
}

// Get handles GET /products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.FindProductByID(r.Context(), domain.ID(r.PathValue("id")))
	if err != nil {
		respondStoreError(w, r, h.logger, err, productNotFound)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, p)
}

// Create handles POST /products (multipart)
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseForm(r)
	if err != nil {
		respondMessage(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.store.SaveProduct(r.Context(), p, actor(r))
	if err != nil {
		respondStoreError(w, r, h.logger, err, categoryNotFound)
		return
	}

	h.logger.InfoContext(r.Context(), "product created",
		slog.String("product_id", created.ID.String()),
		slog.String("name", created.Name))

	respondJSON(w, h.logger, http.StatusCreated, created)
}

// Update handles PUT /products/{id} (multipart)
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseForm(r)
	if err != nil {
		respondMessage(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.store.UpdateProduct(r.Context(), domain.ID(r.PathValue("id")), p)
	if err != nil {
		respondStoreError(w, r, h.logger, err, productNotFound)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, updated)
}

// Delete handles DELETE /products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := domain.ID(r.PathValue("id"))

	if err := h.store.DeleteProduct(r.Context(), id); err != nil {
		respondStoreError(w, r, h.logger, err, productNotFound)
		return
	}

	h.logger.InfoContext(r.Context(), "product deleted",
		slog.String("product_id", id.String()))

	respondMessage(w, h.logger, http.StatusOK, "Producto eliminado")
}

// Sell handles POST /products/{id}/sell
func (h *ProductHandler) Sell(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.store.Sell)
}

// AddStock handles POST /products/{id}/add-stock
func (h *ProductHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.store.AddStock)
}

// Movements handles GET /products/{id}/movements
func (h *ProductHandler) Movements(w http.ResponseWriter, r *http.Request) {
	history, err := h.store.Movements(r.Context(), domain.ID(r.PathValue("id")))
	if err != nil {
		respondStoreError(w, r, h.logger, err, productNotFound)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, history)
}

type adjustFunc func(ctx context.Context, id domain.ID, adj domain.StockAdjustment, actor *domain.Actor) (domain.Product, error)

func (h *ProductHandler) adjust(w http.ResponseWriter, r *http.Request, apply adjustFunc) {
	var adj domain.StockAdjustment
	if err := json.NewDecoder(r.Body).Decode(&adj); err != nil {
		respondMessage(w, h.logger, http.StatusBadRequest, "Cuerpo de solicitud invalido")
		return
	}
	if err := adj.Validate(); err != nil {
		respondMessage(w, h.logger, http.StatusBadRequest, "La cantidad debe ser mayor a 0")
		return
	}

	id := domain.ID(r.PathValue("id"))
	p, err := apply(r.Context(), id, adj, actor(r))
	if err != nil {
		respondStoreError(w, r, h.logger, err, productNotFound)
		return
	}

	h.logger.InfoContext(r.Context(), "stock adjusted",
		slog.String("product_id", id.String()),
		slog.Int("quantity", adj.Quantity),
		slog.Int("stock", p.Stock))

	respondJSON(w, h.logger, http.StatusOK, p)
}

// parseForm reads the multipart product form
func (h *ProductHandler) parseForm(r *http.Request) (domain.Product, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return domain.Product{}, errors.New("Formulario invalido")
	}

	name := strings.TrimSpace(r.FormValue("nombre"))
	if name == "" {
		return domain.Product{}, errors.New("El nombre es obligatorio")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("precio")))
	if err != nil || price.IsNegative() {
		return domain.Product{}, errors.New("Precio invalido")
	}

	stock, err := strconv.Atoi(strings.TrimSpace(r.FormValue("stock")))
	if err != nil || stock < 0 {
		return domain.Product{}, errors.New("Stock invalido")
	}

	categoryID := domain.ID(strings.TrimSpace(r.FormValue("categoryId")))
	if categoryID.IsZero() {
		return domain.Product{}, errors.New("La categoria es obligatoria")
	}

	p := domain.Product{
		Name:       name,
		Price:      price,
		Stock:      stock,
		SKU:        strings.TrimSpace(r.FormValue("sku")),
		CategoryID: categoryID,
	}

	if file, header, err := r.FormFile("imagen"); err == nil {
		_ = file.Close()
		p.Image = "/uploads/" + uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
	}

	return p, nil
}

// actor returns the authenticated user as the author of a movement
func actor(r *http.Request) *domain.Actor {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return nil
	}
	return &domain.Actor{ID: u.ID, Name: u.Name}
}
