package restock

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finsight-pos/finsight-pos/internal/platform/db"
	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
)

// Repository persists restock events in PostgreSQL.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	List(ctx context.Context) ([]Event, error)
}

// TxRepository exposes the operations of the atomic restock unit.
type TxRepository interface {
	LockProduct(ctx context.Context, productID int64) (ProductState, error)
	InsertEvent(ctx context.Context, event Event) (Event, error)
	ApplyRestock(ctx context.Context, productID int64, quantity int, purchasePrice float64) error
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

// WithTx runs the callback inside a single transaction.
func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

// List returns the restock history, newest first, with product names.
func (r *repository) List(ctx context.Context) ([]Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT rh.id, rh.product_id, rh.quantity, rh.purchase_price, rh.notes, rh.created_at, p.name
		FROM restock_histories rh
		JOIN products p ON rh.product_id = p.id
		ORDER BY rh.created_at DESC, rh.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var name string
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Quantity, &e.PurchasePrice, &e.Notes, &e.CreatedAt, &name); err != nil {
			return nil, err
		}
		e.ProductName = &name
		events = append(events, e)
	}
	return events, rows.Err()
}

// LockProduct takes the exclusive row lock that serialises stock writers.
func (r *txRepo) LockProduct(ctx context.Context, productID int64) (ProductState, error) {
	var state ProductState
	err := r.tx.QueryRow(ctx,
		`SELECT id, name, stock FROM products WHERE id = $1 FOR UPDATE`, productID,
	).Scan(&state.ID, &state.Name, &state.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProductState{}, fmt.Errorf("%w: product %d", httpx.ErrNotFound, productID)
		}
		return ProductState{}, err
	}
	return state, nil
}

func (r *txRepo) InsertEvent(ctx context.Context, event Event) (Event, error) {
	err := r.tx.QueryRow(ctx, `
		INSERT INTO restock_histories (product_id, quantity, purchase_price, notes, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`,
		event.ProductID, event.Quantity, event.PurchasePrice, event.Notes,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return Event{}, err
	}
	return event, nil
}

// ApplyRestock bumps stock and overwrites the cost basis in one statement.
func (r *txRepo) ApplyRestock(ctx context.Context, productID int64, quantity int, purchasePrice float64) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE products SET stock = stock + $1, purchase_price = $2, updated_at = NOW() WHERE id = $3`,
		quantity, purchasePrice, productID)
	return err
}
