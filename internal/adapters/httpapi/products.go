// internal/adapters/httpapi/products.go
package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

const productsPath = "products"

// ProductGateway talks to /products
type ProductGateway struct {
	client *Client
}

// Statically assert that *ProductGateway implements the ProductGateway interface.
var _ ports.ProductGateway = (*ProductGateway)(nil)

// NewProductGateway creates a new product gateway
func NewProductGateway(client *Client) *ProductGateway {
	return &ProductGateway{client: client}
}

// List handles GET /products?page&limit&search
func (g *ProductGateway) List(ctx context.Context, params domain.ListParams) (*domain.Page[domain.Product], error) {
	body, err := g.client.do(ctx, request{
		method:   http.MethodGet,
		segments: []string{productsPath},
		query:    listQuery(params),
		fallback: "Could not load products",
	})
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Product](body)
}

// Create handles POST /products (multipart)
func (g *ProductGateway) Create(ctx context.Context, payload domain.ProductInput) error {
	return g.send(ctx, http.MethodPost, payload, productsPath)
}

// Update handles PUT /products/{id} (multipart)
func (g *ProductGateway) Update(ctx context.Context, id domain.ID, payload domain.ProductInput) error {
	return g.send(ctx, http.MethodPut, payload, productsPath, id.String())
}

// Remove handles DELETE /products/{id}
func (g *ProductGateway) Remove(ctx context.Context, id domain.ID) error {
	_, err := g.client.do(ctx, request{
		method:   http.MethodDelete,
		segments: []string{productsPath, id.String()},
		fallback: "Could not delete product",
	})
	return err
}

// Sell handles POST /products/{id}/sell
func (g *ProductGateway) Sell(ctx context.Context, id domain.ID, adj domain.StockAdjustment) error {
	return g.adjust(ctx, id, "sell", adj, "Could not record sale")
}

// AddStock handles POST /products/{id}/add-stock
func (g *ProductGateway) AddStock(ctx context.Context, id domain.ID, adj domain.StockAdjustment) error {
	return g.adjust(ctx, id, "add-stock", adj, "Could not add stock")
}

// Movements handles GET /products/{id}/movements
func (g *ProductGateway) Movements(ctx context.Context, id domain.ID) ([]domain.Movement, error) {
	body, err := g.client.do(ctx, request{
		method:   http.MethodGet,
		segments: []string{productsPath, id.String(), "movements"},
		fallback: "Could not load movement history",
	})
	if err != nil {
		return nil, err
	}
	return decodeItems[domain.Movement](body)
}

func (g *ProductGateway) adjust(ctx context.Context, id domain.ID, action string, adj domain.StockAdjustment, fallback string) error {
	req, err := jsonRequest(http.MethodPost, adj, productsPath, id.String(), action)
	if err != nil {
		return err
	}
	req.fallback = fallback

	_, err = g.client.do(ctx, req)
	return err
}

func (g *ProductGateway) send(ctx context.Context, method string, payload domain.ProductInput, segments ...string) error {
	body, contentType, err := encodeProductForm(payload)
	if err != nil {
		return err
	}

	_, err = g.client.do(ctx, request{
		method:      method,
		segments:    segments,
		body:        body,
		contentType: contentType,
		fallback:    "Could not save product",
	})
	return err
}

// encodeProductForm builds the multipart body: scalar fields plus an optional
// "imagen" file part.
func encodeProductForm(in domain.ProductInput) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	fields := []struct{ name, value string }{
		{"nombre", in.Name},
		{"precio", in.Price.String()},
		{"stock", strconv.Itoa(in.Stock)},
		{"sku", in.SKU},
		{"categoryId", in.CategoryID.String()},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", f.name, err)
		}
	}

	if in.Image != nil && len(in.Image.Data) > 0 {
		contentType := in.Image.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="imagen"; filename="%s"`, quoteEscaper.Replace(in.Image.Filename)))
		h.Set("Content-Type", contentType)

		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := part.Write(in.Image.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write image part: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}

	return buf, mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func listQuery(params domain.ListParams) url.Values {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	q.Set("search", params.Search)
	return q
}
