package restock

import (
	"context"
	"fmt"

	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
)

// Service coordinates the restock atomic unit.
type Service struct {
	repo Repository
}

// NewService builds Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends a restock event and applies it to the product: stock goes
// up by the quantity and the submitted purchase price becomes the current
// cost basis for future sale snapshots. Past snapshots are untouched. All
// steps commit together or not at all.
func (s *Service) Record(ctx context.Context, req RecordRequest) (Event, error) {
	if req.Quantity <= 0 {
		return Event{}, fmt.Errorf("%w: quantity must be positive", httpx.ErrValidation)
	}
	if req.PurchasePrice < 0 {
		return Event{}, fmt.Errorf("%w: purchase price must not be negative", httpx.ErrValidation)
	}

	var event Event
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		product, err := tx.LockProduct(ctx, req.ProductID)
		if err != nil {
			return err
		}

		event, err = tx.InsertEvent(ctx, Event{
			ProductID:     req.ProductID,
			Quantity:      req.Quantity,
			PurchasePrice: req.PurchasePrice,
			Notes:         req.Notes,
		})
		if err != nil {
			return err
		}
		event.ProductName = &product.Name

		return tx.ApplyRestock(ctx, req.ProductID, req.Quantity, req.PurchasePrice)
	})
	if err != nil {
		return Event{}, err
	}
	return event, nil
}

// History lists restock events, newest first.
func (s *Service) History(ctx context.Context) ([]Event, error) {
	return s.repo.List(ctx)
}
