// internal/core/ports/media.go
package ports

import (
	"context"
	"io"

	"github.com/ammerola/stockdesk/internal/core/domain"
)

// ImageSource loads product images referenced on the command line
type ImageSource interface {
	Open(ctx context.Context, ref string) (*domain.Image, error)
}

// ProductExporter writes a product listing in one file format
type ProductExporter interface {
	WriteProducts(w io.Writer, products []domain.Product) error
	Extension() string
}
