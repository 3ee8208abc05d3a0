package export_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stockdesk/internal/adapters/export"
	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/test/helpers"
)

func TestNewWriter(t *testing.T) {
	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{format: "xlsx", wantExt: "xlsx"},
		{format: "", wantExt: "xlsx"},
		{format: " JSON ", wantExt: "json"},
		{format: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("format_"+tt.format, func(t *testing.T) {
			w, err := export.NewWriter(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, w.Extension())
		})
	}
}

func TestXLSXWriter_RoundTrip(t *testing.T) {
	products := []domain.Product{
		*helpers.CreateTestProduct(),
		*helpers.CreateTestProduct(func(p *domain.Product) {
			p.ID = "2"
			p.Name = "Mouse"
			p.SKU = "MS-002"
			p.Stock = 3
			p.Price = decimal.RequireFromString("12.5")
		}),
	}

	var buf bytes.Buffer
	require.NoError(t, (&export.XLSXWriter{}).WriteProducts(&buf, products))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	sheet := file.Sheets[0]
	assert.Equal(t, "Products", sheet.Name)
	assert.Equal(t, 3, sheet.MaxRow)

	header, err := sheet.Cell(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "Name", header.Value)

	low, err := sheet.Cell(2, 6)
	require.NoError(t, err)
	assert.Equal(t, "yes", low.Value)

	rows, rowErrs, err := export.ReadProducts(buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Row)
	assert.Equal(t, "Teclado mecanico", rows[0].Input.Name)
	assert.Equal(t, "Perifericos", rows[0].Category)
	assert.Equal(t, 10, rows[0].Input.Stock)
	assert.True(t, decimal.RequireFromString("45.90").Equal(rows[0].Input.Price))

	assert.Equal(t, "Mouse", rows[1].Input.Name)
	assert.Equal(t, "MS-002", rows[1].Input.SKU)
	assert.Equal(t, 3, rows[1].Input.Stock)
}

func TestReadProducts_BadRows(t *testing.T) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	require.NoError(t, err)

	addRow := func(values ...string) {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetString(v)
		}
	}
	addRow(export.Headers...)
	addRow("", "Cable", "", "Redes", "abc", "1")
	addRow("", "", "", "", "", "")
	addRow("", "Switch", "", "Redes", "$99.99", "4")

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))

	rows, rowErrs, err := export.ReadProducts(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Switch", rows[0].Input.Name)
	assert.Equal(t, 4, rows[0].Row)

	require.Len(t, rowErrs, 1)
	var rowErr *export.RowError
	require.ErrorAs(t, rowErrs[0], &rowErr)
	assert.Equal(t, 2, rowErr.Row)
	assert.Contains(t, rowErr.Error(), "invalid price")
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &export.JSONWriter{}
	require.NoError(t, w.WriteProducts(&buf, []domain.Product{*helpers.CreateTestProduct()}))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Teclado mecanico", decoded[0]["nombre"])

	buf.Reset()
	require.NoError(t, w.WriteProducts(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}
