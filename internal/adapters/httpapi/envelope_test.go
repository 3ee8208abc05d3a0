package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockdesk/internal/core/domain"
)

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantItems      int
		wantTotalPages int
		wantTotalItems int
		wantErr        bool
	}{
		{
			name:           "envelope_with_pagination",
			body:           `{"data":[{"id":1,"nombre":"a"},{"id":2,"nombre":"b"}],"pagination":{"page":1,"totalPages":3,"total":12}}`,
			wantItems:      2,
			wantTotalPages: 3,
			wantTotalItems: 12,
		},
		{
			name:           "bare_array_is_single_page",
			body:           `[{"id":1,"nombre":"a"},{"id":2,"nombre":"b"},{"id":3,"nombre":"c"}]`,
			wantItems:      3,
			wantTotalPages: 1,
			wantTotalItems: 3,
		},
		{
			name:           "envelope_without_pagination",
			body:           `{"data":[{"id":1,"nombre":"a"}]}`,
			wantItems:      1,
			wantTotalPages: 1,
			wantTotalItems: 1,
		},
		{
			name:           "meta_block_with_limit_only",
			body:           `{"data":[{"id":1,"nombre":"a"}],"meta":{"totalItems":11,"limit":5}}`,
			wantItems:      1,
			wantTotalPages: 3,
			wantTotalItems: 11,
		},
		{
			name:           "empty_envelope",
			body:           `{"data":[],"pagination":{"totalPages":0,"total":0}}`,
			wantItems:      0,
			wantTotalPages: 1,
			wantTotalItems: 0,
		},
		{
			name:           "null_data",
			body:           `{"data":null}`,
			wantItems:      0,
			wantTotalPages: 1,
		},
		{
			name:           "empty_body",
			body:           "  ",
			wantItems:      0,
			wantTotalPages: 1,
		},
		{
			name:    "unexpected_shape",
			body:    `"nope"`,
			wantErr: true,
		},
		{
			name:    "malformed_array",
			body:    `[{"id":1,`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := decodeList[domain.Category]([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, page.Items)
			assert.Len(t, page.Items, tt.wantItems)
			assert.Equal(t, tt.wantTotalPages, page.TotalPages)
			assert.Equal(t, tt.wantTotalItems, page.TotalItems)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "message_field", body: `{"message":"Stock insuficiente"}`, want: "Stock insuficiente"},
		{name: "error_field", body: `{"error":"Not found"}`, want: "Not found"},
		{name: "message_list", body: `{"message":["nombre is required","precio must be positive"]}`, want: "nombre is required; precio must be positive"},
		{name: "message_wins_over_error", body: `{"message":"Bad input","error":"Bad Request"}`, want: "Bad input"},
		{name: "html_body", body: `<html>502</html>`, want: ""},
		{name: "empty_body", body: ``, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage([]byte(tt.body)))
		})
	}
}
