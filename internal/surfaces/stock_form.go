// internal/surfaces/stock_form.go
package surfaces

import (
	"context"
	"strconv"
	"strings"

	"github.com/ammerola/stockdesk/internal/core/domain"
)

// StockMode selects what the stock form does on submit
type StockMode int

const (
	ModeSell StockMode = iota
	ModeRestock
)

func (m StockMode) String() string {
	if m == ModeRestock {
		return "restock"
	}
	return "sell"
}

// StockDraft is the adjustment being typed
type StockDraft struct {
	Quantity int
	Reason   string
}

func newStockDraft() StockDraft { return StockDraft{Quantity: 1} }

var stockFields = []field[StockDraft]{
	{name: "quantity", set: func(d *StockDraft, v string) error {
		n, err := atoi(v)
		if err != nil {
			return &domain.ValidationError{Field: "quantity", Message: "quantity must be a whole number"}
		}
		d.Quantity = n
		return nil
	}},
	{name: "reason", set: func(d *StockDraft, v string) error { d.Reason = v; return nil }},
}

// StockForm sells or restocks one product
type StockForm struct {
	actions StockActions

	open    bool
	mode    StockMode
	product domain.Product
	draft   StockDraft
}

// NewStockForm creates a closed form
func NewStockForm(actions StockActions) *StockForm {
	return &StockForm{actions: actions, draft: newStockDraft()}
}

// Open shows the form for product and resets the draft to one unit with no reason
func (f *StockForm) Open(product domain.Product, mode StockMode) {
	f.open = true
	f.mode = mode
	f.product = product
	f.draft = newStockDraft()
}

func (f *StockForm) Close()                  { f.open = false }
func (f *StockForm) IsOpen() bool            { return f.open }
func (f *StockForm) Mode() StockMode         { return f.mode }
func (f *StockForm) Product() domain.Product { return f.product }
func (f *StockForm) Draft() StockDraft       { return f.draft }
func (f *StockForm) Fields() []string        { return fieldNames(stockFields) }

// Set changes one field of the draft
func (f *StockForm) Set(name, value string) error {
	return setField(stockFields, &f.draft, name, value)
}

// ExceedsStock reports whether a sale asks for more than the displayed stock
func (f *StockForm) ExceedsStock() bool {
	return f.mode == ModeSell && f.draft.Quantity > f.product.Stock
}

// CanSubmit is false while the controller is busy, for a non-positive
// quantity, or when a sale exceeds the displayed stock.
func (f *StockForm) CanSubmit() bool {
	if !f.open || f.actions.Busy() {
		return false
	}
	if f.draft.Quantity < 1 {
		return false
	}
	return !f.ExceedsStock()
}

// Submit runs the sell or restock action and closes the form on success
func (f *StockForm) Submit(ctx context.Context) bool {
	if !f.CanSubmit() {
		return false
	}

	adj := domain.StockAdjustment{Quantity: f.draft.Quantity, Reason: strings.TrimSpace(f.draft.Reason)}

	var ok bool
	if f.mode == ModeRestock {
		ok = f.actions.Restock(ctx, f.product.ID, adj)
	} else {
		ok = f.actions.Sell(ctx, f.product.ID, adj)
	}
	if ok {
		f.Close()
	}
	return ok
}

func itoa(n int) string { return strconv.Itoa(n) }

func atoi(s string) (int, error) { return strconv.Atoi(strings.TrimSpace(s)) }
