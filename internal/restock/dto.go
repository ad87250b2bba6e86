package restock

// RecordRequest is the payload for posting a restock.
type RecordRequest struct {
	ProductID     int64   `json:"product_id" validate:"required,gt=0"`
	Quantity      int     `json:"quantity" validate:"required,gt=0"`
	PurchasePrice float64 `json:"purchase_price" validate:"gte=0"`
	Notes         *string `json:"notes"`
}
