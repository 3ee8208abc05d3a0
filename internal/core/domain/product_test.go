package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockdesk/internal/core/domain"
)

func TestProduct_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name         string
		payload      string
		wantID       domain.ID
		wantCategory string
		wantRef      domain.ID
		wantPrice    string
	}{
		{
			name:         "numeric_ids_and_embedded_category",
			payload:      `{"id":12,"nombre":"Mouse","precio":19.99,"stock":4,"categoria":{"id":3,"nombre":"Perifericos"}}`,
			wantID:       "12",
			wantCategory: "Perifericos",
			wantRef:      "3",
			wantPrice:    "19.99",
		},
		{
			name:         "string_ids_and_category_id",
			payload:      `{"id":"a1b2","nombre":"Cable","precio":"2.50","stock":40,"categoryId":"c9"}`,
			wantID:       "a1b2",
			wantCategory: "General",
			wantRef:      "c9",
			wantPrice:    "2.5",
		},
		{
			name:         "null_category",
			payload:      `{"id":1,"nombre":"Lamp","precio":0,"stock":0,"categoria":null}`,
			wantID:       "1",
			wantCategory: "General",
			wantRef:      "",
			wantPrice:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p domain.Product
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &p))

			assert.Equal(t, tt.wantID, p.ID)
			assert.Equal(t, tt.wantCategory, p.CategoryName())
			assert.Equal(t, tt.wantRef, p.CategoryRef())
			assert.Equal(t, tt.wantPrice, p.Price.String())
		})
	}
}

func TestProduct_LowStock(t *testing.T) {
	tests := []struct {
		stock int
		want  bool
	}{
		{stock: 0, want: true},
		{stock: 4, want: true},
		{stock: 5, want: false},
		{stock: 120, want: false},
	}

	for _, tt := range tests {
		p := domain.Product{Stock: tt.stock}
		assert.Equal(t, tt.want, p.LowStock(), "stock=%d", tt.stock)
	}
}

func TestMovement_UnmarshalJSON(t *testing.T) {
	payload := `[
		{"id":1,"tipo":"entrada","cantidad":10,"motivo":"Compra","usuario":{"nombre":"Ana"},"createdAt":"2024-03-01T10:00:00Z"},
		{"id":2,"tipo":"salida","cantidad":3,"motivo":"","createdAt":"2024-03-02T10:00:00Z"},
		{"id":3,"tipo":"ENTRY","cantidad":1,"createdAt":"2024-03-03T10:00:00Z"}
	]`

	var movements []domain.Movement
	require.NoError(t, json.Unmarshal([]byte(payload), &movements))
	require.Len(t, movements, 3)

	assert.Equal(t, domain.MovementEntry, movements[0].Type)
	assert.Equal(t, 10, movements[0].SignedQuantity())
	assert.Equal(t, "Ana", movements[0].ActorName())

	assert.Equal(t, domain.MovementExit, movements[1].Type)
	assert.Equal(t, -3, movements[1].SignedQuantity())
	assert.Equal(t, "system", movements[1].ActorName())

	assert.True(t, movements[2].IsEntry())
}

func TestMovementType_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(map[string]domain.MovementType{
		"in":  domain.MovementEntry,
		"out": domain.MovementExit,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"in":"entrada","out":"salida"}`, string(out))
}

func TestProductInput_Validate(t *testing.T) {
	tests := []struct {
		name     string
		input    domain.ProductInput
		errorMsg string
	}{
		{
			name: "valid_input",
			input: domain.ProductInput{
				Name:       "Keyboard",
				Price:      decimal.NewFromFloat(45.5),
				Stock:      3,
				CategoryID: "1",
			},
		},
		{
			name:     "missing_name",
			input:    domain.ProductInput{Name: "  ", CategoryID: "1"},
			errorMsg: "name is required",
		},
		{
			name:     "missing_category",
			input:    domain.ProductInput{Name: "Keyboard"},
			errorMsg: "category is required",
		},
		{
			name:     "negative_price",
			input:    domain.ProductInput{Name: "Keyboard", CategoryID: "1", Price: decimal.NewFromInt(-1)},
			errorMsg: "price cannot be negative",
		},
		{
			name:     "negative_stock",
			input:    domain.ProductInput{Name: "Keyboard", CategoryID: "1", Stock: -2},
			errorMsg: "stock cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)

			var vErr *domain.ValidationError
			assert.True(t, errors.As(err, &vErr))
		})
	}
}

func TestCategoryInput_Validate(t *testing.T) {
	assert.Error(t, domain.CategoryInput{Name: ""}.Validate())
	assert.Error(t, domain.CategoryInput{Name: "   "}.Validate())
	assert.NoError(t, domain.CategoryInput{Name: "Tools"}.Validate())
}

func TestStockAdjustment(t *testing.T) {
	assert.Error(t, domain.StockAdjustment{Quantity: 0}.Validate())
	assert.NoError(t, domain.StockAdjustment{Quantity: 1}.Validate())

	adj := domain.StockAdjustment{Quantity: 4}
	assert.True(t, adj.ExceedsStock(3))
	assert.False(t, adj.ExceedsStock(4))

	body, err := json.Marshal(domain.StockAdjustment{Quantity: 2, Reason: "Venta"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"cantidad":2,"motivo":"Venta"}`, string(body))
}

func TestRegistration_Validate(t *testing.T) {
	base := domain.Registration{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	}
	require.NoError(t, base.Validate())

	mismatch := base
	mismatch.ConfirmPassword = "other"
	err := mismatch.Validate()
	require.Error(t, err)
	assert.Equal(t, "passwords do not match", err.Error())

	badEmail := base
	badEmail.Email = "not-an-email"
	assert.Error(t, badEmail.Validate())

	body, err := json.Marshal(base)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "ConfirmPassword")
	assert.Contains(t, string(body), `"nombre":"Ana"`)
}

func TestPageState(t *testing.T) {
	state := domain.NewPageState()
	assert.Equal(t, 1, state.CurrentPage)
	assert.False(t, state.HasPrev())
	assert.False(t, state.HasNext())

	state = domain.PageState{CurrentPage: 2, TotalPages: 3}
	assert.True(t, state.Contains(1))
	assert.True(t, state.Contains(3))
	assert.False(t, state.Contains(0))
	assert.False(t, state.Contains(4))
	assert.True(t, state.HasPrev())
	assert.True(t, state.HasNext())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server_message_wins",
			err:  &domain.APIError{Status: 400, Message: "Stock insuficiente"},
			want: "Stock insuficiente",
		},
		{
			name: "api_error_without_message_uses_fallback",
			err:  &domain.APIError{Status: 500},
			want: "could not save",
		},
		{
			name: "validation_error",
			err:  domain.CategoryInput{}.Validate(),
			want: "name is required",
		},
		{
			name: "plain_error",
			err:  errors.New("boom"),
			want: "could not save",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.UserMessage(tt.err, "could not save"))
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	err := &domain.APIError{Status: 401, Err: domain.ErrUnauthorized}
	assert.True(t, domain.IsUnauthorized(err))
	assert.Equal(t, "request failed: Unauthorized", err.Error())
}
