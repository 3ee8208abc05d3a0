// internal/surfaces/surfaces.go
package surfaces

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ammerola/stockdesk/internal/core/domain"
)

// ErrUnknownField is returned by Set for a field the surface does not have
var ErrUnknownField = errors.New("unknown field")

// ProductSaver creates or updates a product
type ProductSaver interface {
	Save(ctx context.Context, payload domain.ProductInput, id domain.ID) bool
}

// CategorySaver creates or updates a category
type CategorySaver interface {
	Save(ctx context.Context, payload domain.CategoryInput, id domain.ID) bool
}

// StockActions are the controller operations behind the stock form
type StockActions interface {
	Sell(ctx context.Context, id domain.ID, adj domain.StockAdjustment) bool
	Restock(ctx context.Context, id domain.ID, adj domain.StockAdjustment) bool
	Busy() bool
}

// MovementLoader fetches a product's history
type MovementLoader interface {
	Movements(ctx context.Context, id domain.ID) []domain.Movement
}

// field binds a field name to a setter on a draft
type field[D any] struct {
	name string
	set  func(*D, string) error
}

func setField[D any](fields []field[D], draft *D, name, value string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range fields {
		if f.name == name {
			return f.set(draft, value)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownField, name)
}

func fieldNames[D any](fields []field[D]) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	sort.Strings(names)
	return names
}
