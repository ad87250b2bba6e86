package products

// CreateProductRequest carries the fields accepted when creating a product.
type CreateProductRequest struct {
	Name          string   `json:"name" validate:"required"`
	CategoryID    *int64   `json:"category_id" validate:"omitempty,gt=0"`
	Price         float64  `json:"price" validate:"gte=0"`
	PurchasePrice *float64 `json:"purchase_price" validate:"omitempty,gte=0"`
	Stock         int      `json:"stock" validate:"gte=0"`
	Description   *string  `json:"description"`
	Barcode       *string  `json:"barcode" validate:"omitempty,max=64"`
	ImageURL      *string  `json:"image" validate:"omitempty,url"`
}

// UpdateProductRequest is the explicit allow-list of mutable fields; nil
// means "leave unchanged". Unknown JSON keys are rejected at decode time.
type UpdateProductRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=1"`
	CategoryID    *int64   `json:"category_id" validate:"omitempty,gt=0"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	PurchasePrice *float64 `json:"purchase_price" validate:"omitempty,gte=0"`
	Stock         *int     `json:"stock" validate:"omitempty,gte=0"`
	Description   *string  `json:"description"`
	Barcode       *string  `json:"barcode" validate:"omitempty,max=64"`
	ImageURL      *string  `json:"image" validate:"omitempty,url"`
}

// changes maps the set fields to their column values.
func (r UpdateProductRequest) changes() map[string]any {
	updates := make(map[string]any)
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.CategoryID != nil {
		updates["category_id"] = *r.CategoryID
	}
	if r.Price != nil {
		updates["price"] = *r.Price
	}
	if r.PurchasePrice != nil {
		updates["purchase_price"] = *r.PurchasePrice
	}
	if r.Stock != nil {
		updates["stock"] = *r.Stock
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.Barcode != nil {
		updates["barcode"] = *r.Barcode
	}
	if r.ImageURL != nil {
		updates["image"] = *r.ImageURL
	}
	return updates
}
