// internal/surfaces/product_form.go
package surfaces

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/core/ports"
)

// ProductDraft is the text the user has typed into the product form
type ProductDraft struct {
	Name       string
	Price      string
	Stock      string
	SKU        string
	CategoryID string
	Image      string
}

var productFields = []field[ProductDraft]{
	{name: "name", set: func(d *ProductDraft, v string) error { d.Name = v; return nil }},
	{name: "price", set: func(d *ProductDraft, v string) error { d.Price = strings.TrimSpace(v); return nil }},
	{name: "stock", set: func(d *ProductDraft, v string) error { d.Stock = strings.TrimSpace(v); return nil }},
	{name: "sku", set: func(d *ProductDraft, v string) error { d.SKU = strings.TrimSpace(v); return nil }},
	{name: "category", set: func(d *ProductDraft, v string) error { d.CategoryID = strings.TrimSpace(v); return nil }},
	{name: "image", set: func(d *ProductDraft, v string) error { d.Image = strings.TrimSpace(v); return nil }},
}

// ProductForm is the create/edit surface for a product
type ProductForm struct {
	saver    ProductSaver
	images   ports.ImageSource
	notifier ports.Notifier

	open   bool
	target domain.ID
	draft  ProductDraft
}

// NewProductForm creates a closed form
func NewProductForm(saver ProductSaver, images ports.ImageSource, notifier ports.Notifier) *ProductForm {
	return &ProductForm{saver: saver, images: images, notifier: notifier}
}

// Open shows the form for target, or for a new product when target is nil.
// The draft is always reset to the target's values.
func (f *ProductForm) Open(target *domain.Product) {
	f.open = true
	f.target = ""
	f.draft = ProductDraft{}

	if target == nil {
		return
	}
	f.target = target.ID
	f.draft = ProductDraft{
		Name:       target.Name,
		Price:      target.Price.String(),
		Stock:      itoa(target.Stock),
		SKU:        target.SKU,
		CategoryID: target.CategoryRef().String(),
	}
}

// Close hides the form
func (f *ProductForm) Close() { f.open = false }

// IsOpen reports whether the form is shown
func (f *ProductForm) IsOpen() bool { return f.open }

// Editing reports whether the form edits an existing product
func (f *ProductForm) Editing() bool { return !f.target.IsZero() }

// Target returns the id of the product being edited
func (f *ProductForm) Target() domain.ID { return f.target }

// Draft returns the current input
func (f *ProductForm) Draft() ProductDraft { return f.draft }

// Fields lists the names accepted by Set
func (f *ProductForm) Fields() []string { return fieldNames(productFields) }

// Set changes one field of the draft
func (f *ProductForm) Set(name, value string) error {
	return setField(productFields, &f.draft, name, value)
}

// Submit saves the draft and closes the form on success
func (f *ProductForm) Submit(ctx context.Context) bool {
	if !f.open {
		return false
	}

	input, err := f.input(ctx)
	if err != nil {
		f.notifier.Error(ctx, "Error", domain.UserMessage(err, err.Error()))
		return false
	}

	if !f.saver.Save(ctx, input, f.target) {
		return false
	}
	f.Close()
	return true
}

func (f *ProductForm) input(ctx context.Context) (domain.ProductInput, error) {
	in := domain.ProductInput{
		Name:       strings.TrimSpace(f.draft.Name),
		SKU:        f.draft.SKU,
		CategoryID: domain.ID(f.draft.CategoryID),
	}

	if f.draft.Price == "" {
		return in, &domain.ValidationError{Field: "price", Message: "price is required"}
	}
	price, err := decimal.NewFromString(strings.TrimPrefix(f.draft.Price, "$"))
	if err != nil {
		return in, &domain.ValidationError{Field: "price", Message: "price must be a number"}
	}
	in.Price = price

	if f.draft.Stock != "" {
		stock, err := atoi(f.draft.Stock)
		if err != nil {
			return in, &domain.ValidationError{Field: "stock", Message: "stock must be a whole number"}
		}
		in.Stock = stock
	}

	if f.draft.Image != "" {
		if f.images == nil {
			return in, &domain.ValidationError{Field: "image", Message: "image uploads are not available"}
		}
		img, err := f.images.Open(ctx, f.draft.Image)
		if err != nil {
			return in, err
		}
		in.Image = img
	}

	return in, nil
}
