// internal/adapters/httpapi/categories.go
package httpapi

import (
	"context"
	"net/http"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

const categoriesPath = "categories"

// CategoryGateway talks to /categories
type CategoryGateway struct {
	client *Client
}

var _ ports.CategoryGateway = (*CategoryGateway)(nil)

// NewCategoryGateway creates a new category gateway
func NewCategoryGateway(client *Client) *CategoryGateway {
	return &CategoryGateway{client: client}
}

func (g *CategoryGateway) List(ctx context.Context, params domain.ListParams) (*domain.Page[domain.Category], error) {
	body, err := g.client.do(ctx, request{
		method:   http.MethodGet,
		segments: []string{categoriesPath},
		query:    listQuery(params),
		fallback: "Could not load categories",
	})
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Category](body)
}

func (g *CategoryGateway) Create(ctx context.Context, payload domain.CategoryInput) error {
	return g.send(ctx, http.MethodPost, payload, categoriesPath)
}

func (g *CategoryGateway) Update(ctx context.Context, id domain.ID, payload domain.CategoryInput) error {
	return g.send(ctx, http.MethodPut, payload, categoriesPath, id.String())
}

func (g *CategoryGateway) Remove(ctx context.Context, id domain.ID) error {
	_, err := g.client.do(ctx, request{
		method:   http.MethodDelete,
		segments: []string{categoriesPath, id.String()},
		fallback: "Could not delete category",
	})
	return err
}

func (g *CategoryGateway) send(ctx context.Context, method string, payload domain.CategoryInput, segments ...string) error {
	req, err := jsonRequest(method, payload, segments...)
	if err != nil {
		return err
	}
	req.fallback = "Could not save category"

	_, err = g.client.do(ctx, req)
	return err
}
