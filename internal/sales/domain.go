package sales

import "time"

// Payment methods accepted at checkout.
const (
	PaymentCash     = "cash"
	PaymentQRIS     = "qris"
	PaymentTransfer = "transfer"
)

// StatusCompleted is the only status checkout writes today; the column
// exists so refunds or voids can be layered on without a schema change.
const StatusCompleted = "completed"

// Sale is a committed checkout. Totals and line snapshots are frozen at
// creation time; later price or cost changes never rewrite them.
type Sale struct {
	ID            int64      `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	UserID        int64      `json:"user_id"`
	Total         float64    `json:"total_amount"`
	PaymentMethod string     `json:"payment_method"`
	CashReceived  *float64   `json:"cash_amount,omitempty"`
	ChangeDue     *float64   `json:"change_amount,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	Items         []LineItem `json:"items"`

	CashierName *string `json:"cashier_name,omitempty"`
}

// LineItem snapshots one product at the moment of sale. Price is the sell
// price charged, PurchasePrice the cost basis at that moment; the spread
// times quantity is this line's profit.
type LineItem struct {
	ID            int64   `json:"id"`
	SaleID        int64   `json:"sale_id"`
	ProductID     int64   `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	PurchasePrice float64 `json:"buy_price"`
	Subtotal      float64 `json:"subtotal"`
}

// ProductState is the locked slice of a product row checkout reads.
type ProductState struct {
	ID            int64
	Name          string
	Price         float64
	PurchasePrice *float64
	Stock         int
	IsActive      bool
}
