package surfaces_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/surfaces"
	"github.com/ammerola/stockdesk/test/helpers"
	"github.com/ammerola/stockdesk/test/mocks"
)

type saveCall[P any] struct {
	payload P
	id      domain.ID
}

type fakeSaver[P any] struct {
	result bool
	calls  []saveCall[P]
}

func (f *fakeSaver[P]) Save(_ context.Context, payload P, id domain.ID) bool {
	f.calls = append(f.calls, saveCall[P]{payload: payload, id: id})
	return f.result
}

type stockCall struct {
	action string
	id     domain.ID
	adj    domain.StockAdjustment
}

type fakeStock struct {
	busy   bool
	result bool
	calls  []stockCall
}

func (f *fakeStock) Sell(_ context.Context, id domain.ID, adj domain.StockAdjustment) bool {
	f.calls = append(f.calls, stockCall{"sell", id, adj})
	return f.result
}

func (f *fakeStock) Restock(_ context.Context, id domain.ID, adj domain.StockAdjustment) bool {
	f.calls = append(f.calls, stockCall{"restock", id, adj})
	return f.result
}

func (f *fakeStock) Busy() bool { return f.busy }

type fakeLoader struct {
	movements []domain.Movement
	calls     int
}

func (f *fakeLoader) Movements(context.Context, domain.ID) []domain.Movement {
	f.calls++
	return f.movements
}

func TestProductForm_OpenResetsDraft(t *testing.T) {
	form := surfaces.NewProductForm(&fakeSaver[domain.ProductInput]{}, nil, helpers.NewRecordingNotifier())
	product := helpers.CreateTestProduct()

	form.Open(product)
	assert.True(t, form.IsOpen())
	assert.True(t, form.Editing())
	assert.Equal(t, "Teclado mecanico", form.Draft().Name)
	assert.Equal(t, "45.9", form.Draft().Price)
	assert.Equal(t, "10", form.Draft().Stock)
	assert.Equal(t, "1", form.Draft().CategoryID)

	require.NoError(t, form.Set("name", "Edited"))
	assert.Equal(t, "Edited", form.Draft().Name)

	// reopening for a new product clears the previous edit
	form.Close()
	form.Open(nil)
	assert.False(t, form.Editing())
	assert.Equal(t, surfaces.ProductDraft{}, form.Draft())

	// reopening for the same product restores its values
	form.Open(product)
	assert.Equal(t, "Teclado mecanico", form.Draft().Name)

	assert.ErrorIs(t, form.Set("color", "red"), surfaces.ErrUnknownField)
	assert.Equal(t, []string{"category", "image", "name", "price", "sku", "stock"}, form.Fields())
}

func TestProductForm_Submit(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]string
		saveResult bool
		wantOK     bool
		wantSaves  int
		wantOpen   bool
		wantErrors []string
	}{
		{
			name:       "saves_and_closes",
			fields:     map[string]string{"name": "Mouse", "price": "12.50", "stock": "3", "category": "2"},
			saveResult: true,
			wantOK:     true,
			wantSaves:  1,
		},
		{
			name:       "server_failure_keeps_form_open",
			fields:     map[string]string{"name": "Mouse", "price": "12.50", "category": "2"},
			saveResult: false,
			wantSaves:  1,
			wantOpen:   true,
		},
		{
			name:       "bad_price_is_not_dispatched",
			fields:     map[string]string{"name": "Mouse", "price": "abc", "category": "2"},
			wantOpen:   true,
			wantErrors: []string{"price must be a number"},
		},
		{
			name:       "missing_price_is_not_dispatched",
			fields:     map[string]string{"name": "Mouse", "category": "2"},
			wantOpen:   true,
			wantErrors: []string{"price is required"},
		},
		{
			name:       "bad_stock_is_not_dispatched",
			fields:     map[string]string{"name": "Mouse", "price": "1", "stock": "1.5", "category": "2"},
			wantOpen:   true,
			wantErrors: []string{"stock must be a whole number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saver := &fakeSaver[domain.ProductInput]{result: tt.saveResult}
			notifier := helpers.NewRecordingNotifier()
			form := surfaces.NewProductForm(saver, nil, notifier)

			form.Open(nil)
			for k, v := range tt.fields {
				require.NoError(t, form.Set(k, v))
			}

			assert.Equal(t, tt.wantOK, form.Submit(context.Background()))
			assert.Len(t, saver.calls, tt.wantSaves)
			assert.Equal(t, tt.wantOpen, form.IsOpen())
			assert.Equal(t, tt.wantErrors, notifier.Errors())
		})
	}
}

func TestProductForm_SubmitPassesPayload(t *testing.T) {
	saver := &fakeSaver[domain.ProductInput]{result: true}
	form := surfaces.NewProductForm(saver, nil, helpers.NewRecordingNotifier())

	form.Open(helpers.CreateTestProduct())
	require.NoError(t, form.Set("stock", "7"))
	require.True(t, form.Submit(context.Background()))

	require.Len(t, saver.calls, 1)
	call := saver.calls[0]
	assert.Equal(t, domain.ID("1"), call.id)
	assert.Equal(t, 7, call.payload.Stock)
	assert.True(t, decimal.RequireFromString("45.9").Equal(call.payload.Price))
	assert.Equal(t, domain.ID("1"), call.payload.CategoryID)
	assert.Nil(t, call.payload.Image)

	// closed forms do nothing
	assert.False(t, form.Submit(context.Background()))
	assert.Len(t, saver.calls, 1)
}

func TestProductForm_Image(t *testing.T) {
	ctrl := gomock.NewController(t)
	images := mocks.NewMockImageSource(ctrl)
	saver := &fakeSaver[domain.ProductInput]{result: true}
	notifier := helpers.NewRecordingNotifier()
	form := surfaces.NewProductForm(saver, images, notifier)
	ctx := context.Background()

	img := &domain.Image{Filename: "kb.png", ContentType: "image/png", Data: []byte{1}}
	images.EXPECT().Open(gomock.Any(), "./kb.png").Return(img, nil)

	form.Open(helpers.CreateTestProduct())
	require.NoError(t, form.Set("image", "./kb.png"))
	require.True(t, form.Submit(ctx))
	assert.Equal(t, img, saver.calls[0].payload.Image)

	images.EXPECT().Open(gomock.Any(), "missing.png").Return(nil, errors.New("failed to open image: no such file"))
	form.Open(helpers.CreateTestProduct())
	require.NoError(t, form.Set("image", "missing.png"))
	assert.False(t, form.Submit(ctx))
	assert.True(t, form.IsOpen())
	assert.Equal(t, []string{"failed to open image: no such file"}, notifier.Errors())
}

func TestCategoryForm(t *testing.T) {
	saver := &fakeSaver[domain.CategoryInput]{result: true}
	form := surfaces.NewCategoryForm(saver)
	ctx := context.Background()

	form.Open(&domain.Category{ID: "4", Name: "Redes"})
	assert.Equal(t, "Redes", form.Draft().Name)
	require.NoError(t, form.Set("name", "Networking"))
	require.True(t, form.Submit(ctx))
	assert.False(t, form.IsOpen())
	assert.Equal(t, saveCall[domain.CategoryInput]{payload: domain.CategoryInput{Name: "Networking"}, id: "4"}, saver.calls[0])

	form.Open(nil)
	assert.Empty(t, form.Draft().Name)
	assert.False(t, form.Editing())

	saver.result = false
	assert.False(t, form.Submit(ctx))
	assert.True(t, form.IsOpen())
}

func TestStockForm_CanSubmit(t *testing.T) {
	tests := []struct {
		name     string
		mode     surfaces.StockMode
		stock    int
		quantity string
		busy     bool
		want     bool
	}{
		{name: "sell_within_stock", mode: surfaces.ModeSell, stock: 10, quantity: "3", want: true},
		{name: "sell_all_stock", mode: surfaces.ModeSell, stock: 4, quantity: "4", want: true},
		{name: "sell_above_stock", mode: surfaces.ModeSell, stock: 2, quantity: "3", want: false},
		{name: "restock_ignores_stock", mode: surfaces.ModeRestock, stock: 0, quantity: "50", want: true},
		{name: "zero_quantity", mode: surfaces.ModeRestock, stock: 0, quantity: "0", want: false},
		{name: "busy_controller", mode: surfaces.ModeSell, stock: 10, quantity: "1", busy: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := &fakeStock{busy: tt.busy, result: true}
			form := surfaces.NewStockForm(actions)
			form.Open(domain.Product{ID: "p1", Stock: tt.stock}, tt.mode)
			require.NoError(t, form.Set("quantity", tt.quantity))

			assert.Equal(t, tt.want, form.CanSubmit())

			submitted := form.Submit(context.Background())
			assert.Equal(t, tt.want, submitted)
			if !tt.want {
				assert.Empty(t, actions.calls)
			}
		})
	}
}

func TestStockForm_Submit(t *testing.T) {
	actions := &fakeStock{result: true}
	form := surfaces.NewStockForm(actions)
	ctx := context.Background()

	form.Open(domain.Product{ID: "p1", Stock: 10}, surfaces.ModeSell)
	assert.Equal(t, surfaces.StockDraft{Quantity: 1}, form.Draft())
	require.NoError(t, form.Set("quantity", "3"))
	require.NoError(t, form.Set("reason", " Venta "))
	require.True(t, form.Submit(ctx))
	assert.False(t, form.IsOpen())

	form.Open(domain.Product{ID: "p2", Stock: 0}, surfaces.ModeRestock)
	assert.Equal(t, surfaces.StockDraft{Quantity: 1}, form.Draft())
	require.True(t, form.Submit(ctx))

	assert.Equal(t, []stockCall{
		{"sell", "p1", domain.StockAdjustment{Quantity: 3, Reason: "Venta"}},
		{"restock", "p2", domain.StockAdjustment{Quantity: 1}},
	}, actions.calls)

	actions.result = false
	form.Open(domain.Product{ID: "p2", Stock: 0}, surfaces.ModeRestock)
	assert.False(t, form.Submit(ctx))
	assert.True(t, form.IsOpen())

	assert.Error(t, form.Set("quantity", "many"))
	assert.Equal(t, "sell", surfaces.ModeSell.String())
	assert.Equal(t, "restock", surfaces.ModeRestock.String())
}

func TestMovementHistory(t *testing.T) {
	loader := &fakeLoader{movements: []domain.Movement{{ID: "1", Type: domain.MovementExit, Quantity: 3}}}
	history := surfaces.NewMovementHistory(loader)
	ctx := context.Background()

	assert.False(t, history.Empty())

	history.Open(ctx, domain.Product{ID: "p1"})
	history.Open(ctx, domain.Product{ID: "p1"})
	assert.Equal(t, 1, loader.calls)
	assert.Len(t, history.Movements(), 1)
	assert.False(t, history.Empty())

	history.Close()
	loader.movements = []domain.Movement{}
	history.Open(ctx, domain.Product{ID: "p1"})
	assert.Equal(t, 2, loader.calls)
	assert.True(t, history.Empty())

	history.Open(ctx, domain.Product{ID: "p2"})
	assert.Equal(t, 3, loader.calls)
	assert.Equal(t, domain.ID("p2"), history.Product().ID)
}
