package sales

// CreateSaleRequest is the checkout payload. Total is the client's view of
// the sum and is verified against the server-side computation, never trusted.
type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	Total         float64           `json:"total_amount" validate:"gte=0"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash qris transfer"`
	CashReceived  *float64          `json:"cash_amount" validate:"omitempty,gte=0"`
}

// SaleItemRequest is one cart line.
type SaleItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}
