// internal/adapters/export/import.go
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stockdesk/internal/core/domain"
)

// RowError reports a spreadsheet row that could not be turned into a product
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ImportedRow is one product read from a spreadsheet. Category holds the
// category name as written; the caller maps it to an id.
type ImportedRow struct {
	Row      int
	Category string
	Input    domain.ProductInput
}

// ReadProducts parses the first sheet of an xlsx document laid out like
// XLSXWriter output. Rows without a name are skipped; malformed numbers are
// collected as RowErrors and parsing continues.
func ReadProducts(data []byte) ([]ImportedRow, []error, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, nil, nil
	}

	var (
		rows []ImportedRow
		errs []error
	)

	err = file.Sheets[0].ForEachRow(func(r *xlsx.Row) error {
		rowIdx := r.GetCoordinate() + 1
		if rowIdx == 1 {
			return nil
		}

		row, err := parseRow(r)
		if err != nil {
			errs = append(errs, &RowError{Row: rowIdx, Err: err})
			return nil
		}
		if row != nil {
			row.Row = rowIdx
			rows = append(rows, *row)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to process Excel rows: %w", err)
	}

	return rows, errs, nil
}

func parseRow(r *xlsx.Row) (*ImportedRow, error) {
	get := func(i int) string {
		c := r.GetCell(i)
		if c == nil {
			return ""
		}
		return strings.TrimSpace(c.String())
	}

	name := get(1)
	if name == "" {
		return nil, nil
	}

	price := decimal.Zero
	if s := strings.TrimPrefix(get(4), "$"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q", s)
		}
		price = d
	}

	stock := 0
	if s := get(5); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid stock %q", s)
		}
		stock = n
	}

	return &ImportedRow{
		Category: get(3),
		Input: domain.ProductInput{
			Name:  name,
			SKU:   get(2),
			Price: price,
			Stock: stock,
		},
	}, nil
}
