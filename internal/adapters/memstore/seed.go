// internal/adapters/memstore/seed.go
package memstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/stockdesk/internal/adapters/export"
	"github.com/ammerola/stockdesk/internal/core/domain"
)

// Seed loads spreadsheet rows, creating categories by name as needed. Rows
// that fail are reported and skipped.
func (s *Store) Seed(ctx context.Context, rows []export.ImportedRow) (int, []error) {
	var errs []error
	created := 0

	for _, row := range rows {
		name := row.Category
		if name == "" {
			name = "General"
		}
		category, ok := s.FindCategoryByName(ctx, name)
		if !ok {
			var err error
			if category, err = s.SaveCategory(ctx, name); err != nil {
				errs = append(errs, &export.RowError{Row: row.Row, Err: err})
				continue
			}
		}

		in := row.Input
		p := domain.Product{
			Name:       in.Name,
			Price:      in.Price,
			Stock:      in.Stock,
			SKU:        in.SKU,
			CategoryID: category.ID,
		}
		if _, err := s.SaveProduct(ctx, p, nil); err != nil {
			errs = append(errs, &export.RowError{Row: row.Row, Err: fmt.Errorf("failed to save %q: %w", in.Name, err)})
			continue
		}
		created++
	}

	s.logger.InfoContext(ctx, "seeded store",
		slog.Int("products", created),
		slog.Int("rejected", len(errs)))

	return created, errs
}
