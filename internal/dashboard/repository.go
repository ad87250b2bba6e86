package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the aggregates behind the dashboard. It only ever scans
// committed sale records and the product catalog, nothing here mutates.
type Repository interface {
	RevenueSince(ctx context.Context, since time.Time) (float64, error)
	TransactionCountSince(ctx context.Context, since time.Time) (int, error)
	ProfitSince(ctx context.Context, since time.Time) (float64, error)
	ActiveProductCount(ctx context.Context) (int, error)
	LowStockCount(ctx context.Context, threshold int) (int, error)
	DailyRevenue(ctx context.Context, from, to time.Time) (map[string]float64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	var revenue float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM transactions WHERE created_at >= $1`, since,
	).Scan(&revenue)
	return revenue, err
}

func (r *repository) TransactionCountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE created_at >= $1`, since,
	).Scan(&count)
	return count, err
}

// ProfitSince sums (price - purchase_price) * quantity over line items of
// sales committed since the window start. Snapshots make this a pure scan,
// current catalog prices never enter the computation.
func (r *repository) ProfitSince(ctx context.Context, since time.Time) (float64, error) {
	var profit float64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM((ti.price - ti.purchase_price) * ti.quantity), 0)
		FROM transaction_items ti
		JOIN transactions t ON ti.transaction_id = t.id
		WHERE t.created_at >= $1`, since,
	).Scan(&profit)
	return profit, err
}

func (r *repository) ActiveProductCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE is_active = TRUE`,
	).Scan(&count)
	return count, err
}

func (r *repository) LowStockCount(ctx context.Context, threshold int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE is_active = TRUE AND stock < $1`, threshold,
	).Scan(&count)
	return count, err
}

// DailyRevenue returns revenue per calendar day keyed by YYYY-MM-DD for
// sales in [from, to). Days without sales are absent from the map.
func (r *repository) DailyRevenue(ctx context.Context, from, to time.Time) (map[string]float64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DATE(created_at)::text, COALESCE(SUM(total), 0)
		FROM transactions
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY DATE(created_at)`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	revenue := map[string]float64{}
	for rows.Next() {
		var day string
		var amount float64
		if err := rows.Scan(&day, &amount); err != nil {
			return nil, err
		}
		revenue[day] = amount
	}
	return revenue, rows.Err()
}
