// internal/core/ports/gateways.go
package ports

import (
	"context"

	"github.com/ammerola/stockdesk/internal/core/domain"
)

// ProductGateway is implemented by the REST adapter for /products
type ProductGateway interface {
	ResourceGateway[domain.Product, domain.ProductInput]

	Sell(ctx context.Context, id domain.ID, adj domain.StockAdjustment) error
	AddStock(ctx context.Context, id domain.ID, adj domain.StockAdjustment) error
	Movements(ctx context.Context, id domain.ID) ([]domain.Movement, error)
}

// CategoryGateway is implemented by the REST adapter for /categories
type CategoryGateway interface {
	ResourceGateway[domain.Category, domain.CategoryInput]
}

// AuthGateway exchanges credentials for a session
type AuthGateway interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	Register(ctx context.Context, reg domain.Registration) error
}
