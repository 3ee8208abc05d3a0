// internal/core/services/dashboard.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

// DashboardSummary is the landing view after login
type DashboardSummary struct {
	User            domain.User      `json:"user"`
	IsAdmin         bool             `json:"is_admin"`
	TotalProducts   int              `json:"total_products"`
	ProductPages    int              `json:"product_pages"`
	TotalCategories int              `json:"total_categories"`
	LowStock        []domain.Product `json:"low_stock"`
}

// Dashboard loads the landing summary
type Dashboard struct {
	products   ports.ProductGateway
	categories ports.CategoryGateway
	auth       *AuthService
	pageSize   int
	logger     *slog.Logger
}

// NewDashboard creates a new dashboard service
func NewDashboard(products ports.ProductGateway, categories ports.CategoryGateway, auth *AuthService, pageSize int, logger *slog.Logger) *Dashboard {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	return &Dashboard{
		products:   products,
		categories: categories,
		auth:       auth,
		pageSize:   pageSize,
		logger:     logger.With(slog.String("service", "dashboard")),
	}
}

// Load fetches the first page of products and categories in parallel
func (d *Dashboard) Load(ctx context.Context) (*DashboardSummary, error) {
	user := d.auth.CurrentUser(ctx)
	summary := &DashboardSummary{
		User:     user,
		IsAdmin:  user.IsAdmin(),
		LowStock: []domain.Product{},
	}

	var products *domain.Page[domain.Product]
	var categories *domain.Page[domain.Category]

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = d.products.List(gctx, domain.ListParams{Page: 1, Limit: d.pageSize})
		if err != nil {
			return fmt.Errorf("failed to load products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = d.categories.List(gctx, domain.ListParams{Page: 1, Limit: d.pageSize})
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if products != nil {
		summary.TotalProducts = products.TotalItems
		summary.ProductPages = products.TotalPages
		for _, p := range products.Items {
			if p.LowStock() {
				summary.LowStock = append(summary.LowStock, p)
			}
		}
	}
	if categories != nil {
		summary.TotalCategories = categories.TotalItems
	}

	d.logger.DebugContext(ctx, "dashboard loaded",
		slog.Int("total_products", summary.TotalProducts),
		slog.Int("low_stock", len(summary.LowStock)))

	return summary, nil
}
