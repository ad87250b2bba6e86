package restock

import "time"

// Event records a single stock intake. Immutable once created; together
// with sale line items it forms the stock ledger behind Product.stock.
type Event struct {
	ID            int64     `json:"id"`
	ProductID     int64     `json:"product_id"`
	Quantity      int       `json:"quantity"`
	PurchasePrice float64   `json:"purchase_price"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`

	ProductName *string `json:"product_name,omitempty"`
}

// ProductState is the slice of a product row the restock unit locks.
type ProductState struct {
	ID    int64
	Name  string
	Stock int
}
