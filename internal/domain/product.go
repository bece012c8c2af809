package domain

import "github.com/shopspring/decimal"

// InventoryStatus mirrors the catalog's stock classification.
type InventoryStatus string

const (
	StatusInStock    InventoryStatus = "INSTOCK"
	StatusLowStock   InventoryStatus = "LOWSTOCK"
	StatusOutOfStock InventoryStatus = "OUTOFSTOCK"
)

// ProductRef is an immutable snapshot of a catalog product taken at the
// moment it entered a collection. The ID is the single normalized product
// identifier; there is no secondary store-level identifier.
type ProductRef struct {
	ID              string          `json:"id"`
	Code            string          `json:"code,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category,omitempty"`
	Price           decimal.Decimal `json:"price"`
	InventoryStatus InventoryStatus `json:"inventoryStatus,omitempty"`
	Rating          float64         `json:"rating,omitempty"`
}

// LineItem pairs a product snapshot with a quantity. A quantity of zero is
// equivalent to absence; collections never hold zero-quantity items at rest.
type LineItem struct {
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
}

// Subtotal is unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
