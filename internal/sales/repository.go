package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finsight-pos/finsight-pos/internal/platform/db"
	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
)

// Repository persists sales in PostgreSQL.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	List(ctx context.Context, limit, offset int) ([]Sale, int, error)
}

// TxRepository exposes the operations of the checkout atomic unit.
type TxRepository interface {
	LockProduct(ctx context.Context, productID int64) (ProductState, error)
	InsertSale(ctx context.Context, sale Sale) (Sale, error)
	InsertLineItem(ctx context.Context, item LineItem) (LineItem, error)
	DecrementStock(ctx context.Context, productID int64, quantity int) error
}

type repository struct {
	pool *pgxpool.Pool
}

type txRepo struct {
	tx pgx.Tx
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

// List returns one page of sales, newest first, with their line items and
// cashier names attached. The second return value is the total sale count.
func (r *repository) List(ctx context.Context, limit, offset int) ([]Sale, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.invoice_number, t.user_id, t.total, t.payment_method,
		       t.cash_received, t.change_due, t.status, t.created_at, u.name
		FROM transactions t
		JOIN users u ON t.user_id = u.id
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sales []Sale
	ids := make([]int64, 0, limit)
	for rows.Next() {
		var s Sale
		var cashier string
		if err := rows.Scan(&s.ID, &s.InvoiceNumber, &s.UserID, &s.Total, &s.PaymentMethod,
			&s.CashReceived, &s.ChangeDue, &s.Status, &s.CreatedAt, &cashier); err != nil {
			return nil, 0, err
		}
		s.CashierName = &cashier
		s.Items = []LineItem{}
		sales = append(sales, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(sales) == 0 {
		return sales, total, nil
	}

	itemRows, err := r.pool.Query(ctx, `
		SELECT ti.id, ti.transaction_id, ti.product_id, p.name, ti.quantity, ti.price, ti.purchase_price, ti.subtotal
		FROM transaction_items ti
		JOIN products p ON ti.product_id = p.id
		WHERE ti.transaction_id = ANY($1)
		ORDER BY ti.id`, ids)
	if err != nil {
		return nil, 0, err
	}
	defer itemRows.Close()

	bySale := make(map[int64]int, len(sales))
	for i, s := range sales {
		bySale[s.ID] = i
	}
	for itemRows.Next() {
		var item LineItem
		if err := itemRows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.Price, &item.PurchasePrice, &item.Subtotal); err != nil {
			return nil, 0, err
		}
		i := bySale[item.SaleID]
		sales[i].Items = append(sales[i].Items, item)
	}
	return sales, total, itemRows.Err()
}

// LockProduct takes the row lock that serialises stock movement for one
// product. Inactive products are still locked so the caller can report a
// precise error instead of a bare not-found.
func (r *txRepo) LockProduct(ctx context.Context, productID int64) (ProductState, error) {
	var state ProductState
	err := r.tx.QueryRow(ctx,
		`SELECT id, name, price, purchase_price, stock, is_active FROM products WHERE id = $1 FOR UPDATE`,
		productID,
	).Scan(&state.ID, &state.Name, &state.Price, &state.PurchasePrice, &state.Stock, &state.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProductState{}, fmt.Errorf("%w: product %d", httpx.ErrNotFound, productID)
		}
		return ProductState{}, err
	}
	return state, nil
}

func (r *txRepo) InsertSale(ctx context.Context, sale Sale) (Sale, error) {
	err := r.tx.QueryRow(ctx, `
		INSERT INTO transactions (invoice_number, user_id, total, payment_method, cash_received, change_due, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at`,
		sale.InvoiceNumber, sale.UserID, sale.Total, sale.PaymentMethod, sale.CashReceived, sale.ChangeDue, sale.Status,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return Sale{}, err
	}
	return sale, nil
}

func (r *txRepo) InsertLineItem(ctx context.Context, item LineItem) (LineItem, error) {
	err := r.tx.QueryRow(ctx, `
		INSERT INTO transaction_items (transaction_id, product_id, quantity, price, purchase_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		item.SaleID, item.ProductID, item.Quantity, item.Price, item.PurchasePrice, item.Subtotal,
	).Scan(&item.ID)
	if err != nil {
		return LineItem{}, err
	}
	return item, nil
}

func (r *txRepo) DecrementStock(ctx context.Context, productID int64, quantity int) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2`,
		quantity, productID)
	return err
}
