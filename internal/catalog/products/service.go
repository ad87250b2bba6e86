package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the active catalog with category names joined.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.ListActive(ctx)
}

// Get returns a product regardless of its active flag, so historical
// references stay resolvable after deactivation.
func (s *Service) Get(ctx context.Context, id int64) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("%w: invalid product id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Product{}, fmt.Errorf("%w: product name is required", httpx.ErrValidation)
	}
	return s.repo.Create(ctx, Product{
		CategoryID:    req.CategoryID,
		Name:          name,
		Description:   req.Description,
		Price:         req.Price,
		PurchasePrice: req.PurchasePrice,
		Stock:         req.Stock,
		Barcode:       req.Barcode,
		ImageURL:      req.ImageURL,
	})
}

// Update applies the allow-listed partial changes.
func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (Product, error) {
	if id <= 0 {
		return Product{}, fmt.Errorf("%w: invalid product id", httpx.ErrValidation)
	}
	updates := req.changes()
	if len(updates) == 0 {
		return Product{}, fmt.Errorf("%w: no updatable fields supplied", httpx.ErrValidation)
	}
	return s.repo.Update(ctx, id, updates)
}

// Deactivate soft deletes a product. Irreversible through this API.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid product id", httpx.ErrValidation)
	}
	return s.repo.Deactivate(ctx, id)
}
