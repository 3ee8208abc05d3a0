// internal/adapters/export/xlsx.go
package export

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

// Headers is the column layout shared by export and import
var Headers = []string{"ID", "Name", "SKU", "Category", "Price", "Stock", "Low Stock"}

// XLSXWriter writes a product listing as a spreadsheet
type XLSXWriter struct {
	SheetName string
}

var _ ports.ProductExporter = (*XLSXWriter)(nil)

func (w *XLSXWriter) Extension() string { return string(FormatXLSX) }

// WriteProducts renders one header row followed by one row per product
func (w *XLSXWriter) WriteProducts(out io.Writer, products []domain.Product) error {
	file := xlsx.NewFile()

	name := w.SheetName
	if name == "" {
		name = "Products"
	}
	sheet, err := file.AddSheet(name)
	if err != nil {
		return fmt.Errorf("failed to add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, header := range Headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID.String())
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.SKU)
		row.AddCell().SetString(p.CategoryName())
		row.AddCell().SetString(p.Price.StringFixed(2))
		row.AddCell().SetInt(p.Stock)
		low := row.AddCell()
		if p.LowStock() {
			low.SetString("yes")
		} else {
			low.SetString("no")
		}
	}

	for i := range Headers {
		sheet.SetColWidth(i+1, i+1, 15)
	}

	if err := file.Write(out); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}
