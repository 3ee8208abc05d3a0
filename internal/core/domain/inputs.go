// internal/core/domain/inputs.go
package domain

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"
)

// Image is a binary upload attached to a product form
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProductInput is the create/update payload for a product
type ProductInput struct {
	Name       string
	Price      decimal.Decimal
	Stock      int
	SKU        string
	CategoryID ID
	Image      *Image
}

// Validate performs the required-field checks the API would otherwise reject
func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return required("name")
	}
	if in.CategoryID.IsZero() {
		return required("category")
	}
	if in.Price.IsNegative() {
		return &ValidationError{Field: "price", Message: "price cannot be negative"}
	}
	if in.Stock < 0 {
		return &ValidationError{Field: "stock", Message: "stock cannot be negative"}
	}
	return nil
}

// ProductInputFrom seeds a form from an existing product
func ProductInputFrom(p Product) ProductInput {
	return ProductInput{
		Name:       p.Name,
		Price:      p.Price,
		Stock:      p.Stock,
		SKU:        p.SKU,
		CategoryID: p.CategoryRef(),
	}
}

// CategoryInput is the create/update payload for a category
type CategoryInput struct {
	Name string `json:"nombre"`
}

// Validate rejects an empty name
func (in CategoryInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return required("name")
	}
	return nil
}

// StockAdjustment is the body of a sell or restock action
type StockAdjustment struct {
	Quantity int    `json:"cantidad"`
	Reason   string `json:"motivo"`
}

// Validate requires a positive quantity
func (a StockAdjustment) Validate() error {
	if a.Quantity < 1 {
		return &ValidationError{Field: "quantity", Message: "quantity must be at least 1"}
	}
	return nil
}

// ExceedsStock reports whether selling a would overdraw the given stock
func (a StockAdjustment) ExceedsStock(stock int) bool {
	return a.Quantity > stock
}

// Credentials are exchanged for a session at login
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate requires both fields
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return required("email")
	}
	if c.Password == "" {
		return required("password")
	}
	return nil
}

// Registration creates a new account
type Registration struct {
	Name            string `json:"nombre"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// Validate checks required fields and that both passwords match
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return required("name")
	}
	if strings.TrimSpace(r.Email) == "" {
		return required("email")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return &ValidationError{Field: "email", Message: fmt.Sprintf("invalid email address %q", r.Email)}
	}
	if r.Password == "" {
		return required("password")
	}
	if r.Password != r.ConfirmPassword {
		return &ValidationError{Field: "confirm_password", Message: "passwords do not match"}
	}
	return nil
}
