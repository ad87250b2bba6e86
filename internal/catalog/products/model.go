package products

import "time"

// Product is a sellable catalog item. Stock and PurchasePrice are mutated
// only by the restock and sales atomic units; price history on sold items
// lives in the sale line snapshots, never here.
type Product struct {
	ID            int64     `json:"id"`
	CategoryID    *int64    `json:"category_id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Price         float64   `json:"price"`
	PurchasePrice *float64  `json:"purchase_price"`
	Stock         int       `json:"stock"`
	IsActive      bool      `json:"is_active"`
	Barcode       *string   `json:"barcode"`
	ImageURL      *string   `json:"image"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	CategoryName *string `json:"category_name,omitempty"`
}
