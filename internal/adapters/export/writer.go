// internal/adapters/export/writer.go
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

// Format names an export file format
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// NewWriter returns the exporter for format
func NewWriter(format string) (ports.ProductExporter, error) {
	switch Format(strings.ToLower(strings.TrimSpace(format))) {
	case FormatXLSX, "excel", "":
		return &XLSXWriter{SheetName: "Products"}, nil
	case FormatJSON:
		return &JSONWriter{Indent: "  "}, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// JSONWriter writes products as a JSON array using the API's field names
type JSONWriter struct {
	Indent string
}

var _ ports.ProductExporter = (*JSONWriter)(nil)

func (w *JSONWriter) WriteProducts(out io.Writer, products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", w.Indent)
	if err := enc.Encode(products); err != nil {
		return fmt.Errorf("failed to encode products: %w", err)
	}
	return nil
}

func (w *JSONWriter) Extension() string { return string(FormatJSON) }
