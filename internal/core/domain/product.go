// internal/core/domain/product.go
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level below which a product is flagged
const LowStockThreshold = 5

// ID is an opaque server-assigned identifier. The API is not consistent about
// sending ids as numbers or strings, so both decode into the same value.
type ID string

// UnmarshalJSON accepts a JSON string, number or null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as a plain string
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the id is unset
func (id ID) IsZero() bool {
	return id == ""
}

// Category groups products
type Category struct {
	ID   ID     `json:"id"`
	Name string `json:"nombre"`
}

// Product is the client's read-only copy of a server product
type Product struct {
	ID         ID              `json:"id"`
	Name       string          `json:"nombre"`
	Price      decimal.Decimal `json:"precio"`
	Stock      int             `json:"stock"`
	SKU        string          `json:"sku,omitempty"`
	CategoryID ID              `json:"categoryId,omitempty"`
	Category   *Category       `json:"categoria,omitempty"`
	Image      string          `json:"imagen,omitempty"`
}

// CategoryRef returns the product's category id, falling back to the embedded category
func (p Product) CategoryRef() ID {
	if !p.CategoryID.IsZero() {
		return p.CategoryID
	}
	if p.Category != nil {
		return p.Category.ID
	}
	return ""
}

// CategoryName returns the embedded category name or "General"
func (p Product) CategoryName() string {
	if p.Category != nil && p.Category.Name != "" {
		return p.Category.Name
	}
	return "General"
}

// LowStock reports whether the product should be highlighted for restocking
func (p Product) LowStock() bool {
	return p.Stock < LowStockThreshold
}

// MovementType is the direction of a stock change
type MovementType string

const (
	MovementEntry MovementType = "ENTRY"
	MovementExit  MovementType = "EXIT"
)

// wire values used by the API
const (
	wireEntry = "entrada"
	wireExit  = "salida"
)

// UnmarshalJSON maps the API's movement labels onto ENTRY/EXIT
func (t *MovementType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid movement type: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(s)) {
	case wireEntry, "entry", "in":
		*t = MovementEntry
	case wireExit, "exit", "out":
		*t = MovementExit
	default:
		*t = MovementType(strings.ToUpper(s))
	}
	return nil
}

// MarshalJSON writes the API's label for the movement type
func (t MovementType) MarshalJSON() ([]byte, error) {
	switch t {
	case MovementEntry:
		return json.Marshal(wireEntry)
	case MovementExit:
		return json.Marshal(wireExit)
	default:
		return json.Marshal(string(t))
	}
}

// Actor is the user who caused a movement
type Actor struct {
	ID   ID     `json:"id,omitempty"`
	Name string `json:"nombre"`
}

// Movement is a server-owned audit record of one stock change
type Movement struct {
	ID        ID           `json:"id"`
	Type      MovementType `json:"tipo"`
	Quantity  int          `json:"cantidad"`
	Reason    string       `json:"motivo,omitempty"`
	Actor     *Actor       `json:"usuario,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// IsEntry reports whether the movement added stock
func (m Movement) IsEntry() bool {
	return m.Type == MovementEntry
}

// SignedQuantity returns the quantity with the sign of its direction
func (m Movement) SignedQuantity() int {
	if m.IsEntry() {
		return m.Quantity
	}
	return -m.Quantity
}

// ActorName returns the actor's name, or "system" for movements without one
func (m Movement) ActorName() string {
	if m.Actor != nil && m.Actor.Name != "" {
		return m.Actor.Name
	}
	return "system"
}
