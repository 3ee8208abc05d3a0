// internal/core/services/products.go
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

const (
	categoryPickerPageSize = 100
	exportPageSize         = 50
)

// ProductController is the list controller for products plus the stock actions
type ProductController struct {
	*ListController[domain.Product, domain.ProductInput]

	products   ports.ProductGateway
	categories ports.CategoryGateway
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewProductController creates the products controller
func NewProductController(
	products ports.ProductGateway,
	categories ports.CategoryGateway,
	notifier ports.Notifier,
	confirmer ports.Confirmer,
	logger *slog.Logger,
	pageSize int,
) *ProductController {
	list := NewListController[domain.Product, domain.ProductInput](products, notifier, confirmer, logger, ControllerOptions{
		Resource: "product",
		PageSize: pageSize,
		Messages: NewMessages("product", "products"),
	})

	return &ProductController{
		ListController: list,
		products:       products,
		categories:     categories,
		notifier:       notifier,
		logger:         logger.With(slog.String("component", "product_controller")),
	}
}

// Product returns the last-known copy of product id from the current page
func (c *ProductController) Product(id domain.ID) (domain.Product, bool) {
	return c.Find(func(p domain.Product) bool { return p.ID == id })
}

// Sell records a sale. The quantity is checked against the stock shown on the
// current page; the server still has the final word.
func (c *ProductController) Sell(ctx context.Context, id domain.ID, adj domain.StockAdjustment) bool {
	if err := adj.Validate(); err != nil {
		c.notifier.Error(ctx, c.msgs.ErrorTitle, err.Error())
		return false
	}

	if p, ok := c.Product(id); ok && adj.ExceedsStock(p.Stock) {
		c.notifier.Error(ctx, c.msgs.ErrorTitle,
			fmt.Sprintf("Not enough stock: %d available", p.Stock))
		return false
	}

	return c.run(ctx, "Sale recorded", fmt.Sprintf("Sold %d units", adj.Quantity), "Could not record sale",
		func(ctx context.Context) error {
			return c.products.Sell(ctx, id, adj)
		})
}

// Restock adds units to a product
func (c *ProductController) Restock(ctx context.Context, id domain.ID, adj domain.StockAdjustment) bool {
	if err := adj.Validate(); err != nil {
		c.notifier.Error(ctx, c.msgs.ErrorTitle, err.Error())
		return false
	}

	return c.run(ctx, "Stock updated", fmt.Sprintf("Added %d units", adj.Quantity), "Could not add stock",
		func(ctx context.Context) error {
			return c.products.AddStock(ctx, id, adj)
		})
}

// Movements returns the audit log of product id. Failures are logged and yield
// an empty history.
func (c *ProductController) Movements(ctx context.Context, id domain.ID) []domain.Movement {
	movements, err := c.products.Movements(ctx, id)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to load movements",
			slog.String("product_id", id.String()),
			slog.String("error", err.Error()))
		return []domain.Movement{}
	}
	if movements == nil {
		return []domain.Movement{}
	}
	return movements
}

// Categories returns every category for the product form's picker
func (c *ProductController) Categories(ctx context.Context) ([]domain.Category, error) {
	all, err := collect[domain.Category, domain.CategoryInput](ctx, c.categories, "", categoryPickerPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return all, nil
}

// Export writes every product matching the committed search with exporter
func (c *ProductController) Export(ctx context.Context, w io.Writer, exporter ports.ProductExporter) (int, error) {
	search := c.Snapshot().Search.Committed

	products, err := collect[domain.Product, domain.ProductInput](ctx, c.products, search, exportPageSize)
	if err != nil {
		return 0, fmt.Errorf("failed to collect products: %w", err)
	}

	if err := exporter.WriteProducts(w, products); err != nil {
		return 0, fmt.Errorf("failed to write %s export: %w", exporter.Extension(), err)
	}

	c.logger.InfoContext(ctx, "exported products",
		slog.Int("count", len(products)),
		slog.String("format", exporter.Extension()))

	return len(products), nil
}

// collect walks every page of a collection
func collect[T any, P any](ctx context.Context, gw ports.ResourceGateway[T, P], search string, limit int) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		res, err := gw.List(ctx, domain.ListParams{Page: page, Limit: limit, Search: search})
		if err != nil {
			return nil, err
		}
		if res == nil {
			break
		}
		all = append(all, res.Items...)
		if page >= res.TotalPages || len(res.Items) == 0 {
			break
		}
	}
	return all, nil
}

// CategoryController is the list controller for categories
type CategoryController = ListController[domain.Category, domain.CategoryInput]

// NewCategoryController creates the categories controller
func NewCategoryController(
	categories ports.CategoryGateway,
	notifier ports.Notifier,
	confirmer ports.Confirmer,
	logger *slog.Logger,
	pageSize int,
) *CategoryController {
	return NewListController[domain.Category, domain.CategoryInput](categories, notifier, confirmer, logger, ControllerOptions{
		Resource: "category",
		PageSize: pageSize,
		Messages: NewMessages("category", "categories"),
	})
}
