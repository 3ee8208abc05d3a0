// test/benchmarks/helpers.go
package benchmarks

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ammerola/stockdesk/internal/adapters/memstore"
	"github.com/ammerola/stockdesk/internal/core/domain"
)

var categoryNames = []string{"Herramientas", "Redes", "Jardin", "Pintura"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seededStore returns a store holding n products spread over a few categories
func seededStore(n int) (*memstore.Store, []domain.ID, error) {
	ctx := context.Background()
	store := memstore.New(discardLogger())

	cats := make([]domain.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		c, err := store.SaveCategory(ctx, name)
		if err != nil {
			return nil, nil, err
		}
		cats = append(cats, c)
	}

	ids := make([]domain.ID, 0, n)
	for i := 0; i < n; i++ {
		p, err := store.SaveProduct(ctx, benchProduct(i, cats[i%len(cats)]), nil)
		if err != nil {
			return nil, nil, err
		}
		ids = append(ids, p.ID)
	}
	return store, ids, nil
}

func benchProduct(i int, cat domain.Category) domain.Product {
	return domain.Product{
		Name:       fmt.Sprintf("Producto de prueba %d", i),
		SKU:        fmt.Sprintf("BENCH-%05d", i),
		Price:      decimal.New(int64(1000+i), -2),
		Stock:      1_000_000,
		CategoryID: cat.ID,
		Category:   &cat,
	}
}

func benchProducts(n int) []domain.Product {
	cat := domain.Category{ID: "1", Name: categoryNames[0]}
	products := make([]domain.Product, n)
	for i := range products {
		products[i] = benchProduct(i, cat)
		products[i].ID = domain.ID(fmt.Sprintf("%d", i+1))
	}
	return products
}
