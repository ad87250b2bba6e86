package sales

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finsight-pos/finsight-pos/internal/observability"
	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
	"github.com/finsight-pos/finsight-pos/internal/shared"
)

// totalTolerance absorbs float rounding between the client's sum and ours.
const totalTolerance = 0.01

// Service runs checkout and sale queries.
type Service struct {
	repo    Repository
	metrics *observability.Metrics
	now     func() time.Time
}

// NewService builds Service. metrics may be nil.
func NewService(repo Repository, metrics *observability.Metrics) *Service {
	return &Service{repo: repo, metrics: metrics, now: time.Now}
}

// Create commits a checkout. Every product row in the cart is locked before
// any stock check so concurrent sales of the same product serialise; the sale
// header, its line snapshots and the stock decrements land in one transaction.
// Any failing item aborts the whole sale.
func (s *Service) Create(ctx context.Context, userID int64, req CreateSaleRequest) (Sale, error) {
	if len(req.Items) == 0 {
		return Sale{}, fmt.Errorf("%w: at least one item is required", httpx.ErrValidation)
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return Sale{}, fmt.Errorf("%w: quantity must be positive", httpx.ErrValidation)
		}
	}

	var sale Sale
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var total float64
		lines := make([]LineItem, 0, len(req.Items))
		for _, item := range req.Items {
			product, err := tx.LockProduct(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive {
				return fmt.Errorf("%w: product %q is no longer sold", httpx.ErrValidation, product.Name)
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("%w: %q has %d left, %d requested",
					httpx.ErrInsufficientStock, product.Name, product.Stock, item.Quantity)
			}

			var cost float64
			if product.PurchasePrice != nil {
				cost = *product.PurchasePrice
			}
			lines = append(lines, LineItem{
				ProductID:     product.ID,
				ProductName:   product.Name,
				Quantity:      item.Quantity,
				Price:         product.Price,
				PurchasePrice: cost,
				Subtotal:      product.Price * float64(item.Quantity),
			})
			total += product.Price * float64(item.Quantity)
		}

		if math.Abs(total-req.Total) > totalTolerance {
			return fmt.Errorf("%w: submitted total %.2f does not match computed total %.2f",
				httpx.ErrValidation, req.Total, total)
		}

		var cashReceived, changeDue *float64
		if req.PaymentMethod == PaymentCash && req.CashReceived != nil {
			if *req.CashReceived < total-totalTolerance {
				return fmt.Errorf("%w: cash received %.2f is less than total %.2f",
					httpx.ErrValidation, *req.CashReceived, total)
			}
			change := *req.CashReceived - total
			cashReceived = req.CashReceived
			changeDue = &change
		}

		created, err := tx.InsertSale(ctx, Sale{
			InvoiceNumber: s.invoiceNumber(),
			UserID:        userID,
			Total:         total,
			PaymentMethod: req.PaymentMethod,
			CashReceived:  cashReceived,
			ChangeDue:     changeDue,
			Status:        StatusCompleted,
		})
		if err != nil {
			return err
		}

		created.Items = make([]LineItem, 0, len(lines))
		for _, line := range lines {
			line.SaleID = created.ID
			inserted, err := tx.InsertLineItem(ctx, line)
			if err != nil {
				return err
			}
			created.Items = append(created.Items, inserted)
			if err := tx.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		sale = created
		return nil
	})
	if err != nil {
		return Sale{}, err
	}
	if s.metrics != nil {
		s.metrics.SaleCreated()
	}
	return sale, nil
}

// List returns one page of sales, newest first.
func (s *Service) List(ctx context.Context, page int) ([]Sale, shared.Pagination, error) {
	if page < 1 {
		page = 1
	}
	p := shared.NewPagination(page, shared.DefaultPerPage, 0)
	sales, total, err := s.repo.List(ctx, p.PerPage, p.Offset())
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	if sales == nil {
		sales = []Sale{}
	}
	return sales, shared.NewPagination(page, shared.DefaultPerPage, total), nil
}

// invoiceNumber builds TRX-YYYYMMDD-XXXXXXXX. The random suffix keeps two
// sales created in the same second from colliding under the unique index.
func (s *Service) invoiceNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TRX-%s-%s", s.now().Format("20060102"), suffix)
}
