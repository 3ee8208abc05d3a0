// internal/surfaces/movements.go
package surfaces

import (
	"context"

	"github.com/ammerola/stockdesk/internal/core/domain"
)

// MovementHistory shows the audit log of one product
type MovementHistory struct {
	loader MovementLoader

	open      bool
	product   domain.Product
	movements []domain.Movement
}

// NewMovementHistory creates a closed viewer
func NewMovementHistory(loader MovementLoader) *MovementHistory {
	return &MovementHistory{loader: loader}
}

// Open shows the history of product. Movements are fetched once per open;
// opening again for the product already shown does not refetch.
func (h *MovementHistory) Open(ctx context.Context, product domain.Product) {
	if h.open && h.product.ID == product.ID {
		return
	}
	h.open = true
	h.product = product
	h.movements = h.loader.Movements(ctx, product.ID)
}

// Close hides the viewer and forgets the loaded history
func (h *MovementHistory) Close() {
	h.open = false
	h.movements = nil
}

func (h *MovementHistory) IsOpen() bool                 { return h.open }
func (h *MovementHistory) Product() domain.Product      { return h.product }
func (h *MovementHistory) Movements() []domain.Movement { return h.movements }

// Empty reports the "no movements recorded" state
func (h *MovementHistory) Empty() bool {
	return h.open && len(h.movements) == 0
}
