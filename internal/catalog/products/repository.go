package products

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
)

// Repository defines persistence operations for the product catalog.
type Repository interface {
	ListActive(ctx context.Context) ([]Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, updates map[string]any) (Product, error)
	Deactivate(ctx context.Context, id int64) error
	UpsertImported(ctx context.Context, tx pgx.Tx, product Product) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const productColumns = `p.id, p.category_id, p.name, p.description, p.price, p.purchase_price,
	p.stock, p.is_active, p.barcode, p.image, p.created_at, p.updated_at`

func (r *repository) ListActive(ctx context.Context) ([]Product, error) {
	query := fmt.Sprintf(`
		SELECT %s, c.name
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.is_active
		ORDER BY p.name`, productColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.PurchasePrice,
			&p.Stock, &p.IsActive, &p.Barcode, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt, &p.CategoryName); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// ListAll returns every product including deactivated ones, for export.
func (r *repository) ListAll(ctx context.Context) ([]Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products p ORDER BY p.id`, productColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products p WHERE p.id = $1`, productColumns)
	var p Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
		}
		return Product{}, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (category_id, name, description, price, purchase_price, stock, is_active, barcode, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, $7, $8, NOW(), NOW())
		RETURNING id, is_active, created_at, updated_at`,
		product.CategoryID, product.Name, product.Description, product.Price, product.PurchasePrice,
		product.Stock, product.Barcode, product.ImageURL,
	).Scan(&product.ID, &product.IsActive, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, fmt.Errorf("%w: barcode already in use", httpx.ErrDuplicate)
		}
		return Product{}, err
	}
	return product, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) (Product, error) {
	query := "UPDATE products SET updated_at = NOW()"
	var args []any
	argPos := 0

	for _, col := range []string{"name", "category_id", "price", "purchase_price", "stock", "description", "barcode", "image"} {
		if v, ok := updates[col]; ok {
			argPos++
			query += ", " + col + " = $" + strconv.Itoa(argPos)
			args = append(args, v)
		}
	}

	argPos++
	query += " WHERE id = $" + strconv.Itoa(argPos)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, fmt.Errorf("%w: barcode already in use", httpx.ErrDuplicate)
		}
		return Product{}, err
	}
	if tag.RowsAffected() == 0 {
		return Product{}, fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
	}
	return r.Get(ctx, id)
}

// Deactivate soft deletes; the row and its historical references survive.
func (r *repository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
	}
	return nil
}

// UpsertImported merges a restored product by barcode, falling back to name
// when no barcode exists. Runs inside the import transaction.
func (r *repository) UpsertImported(ctx context.Context, tx pgx.Tx, product Product) error {
	if product.Barcode != nil && *product.Barcode != "" {
		_, err := tx.Exec(ctx, `
			INSERT INTO products (category_id, name, description, price, purchase_price, stock, is_active, barcode, image, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
			ON CONFLICT (barcode) DO UPDATE SET
				category_id = EXCLUDED.category_id,
				name = EXCLUDED.name,
				description = EXCLUDED.description,
				price = EXCLUDED.price,
				purchase_price = EXCLUDED.purchase_price,
				stock = EXCLUDED.stock,
				is_active = EXCLUDED.is_active,
				image = EXCLUDED.image,
				updated_at = NOW()`,
			product.CategoryID, product.Name, product.Description, product.Price, product.PurchasePrice,
			product.Stock, product.IsActive, product.Barcode, product.ImageURL)
		return err
	}

	var existingID int64
	err := tx.QueryRow(ctx, `SELECT id FROM products WHERE name = $1 AND barcode IS NULL LIMIT 1`, product.Name).Scan(&existingID)
	if errors.Is(err, pgx.ErrNoRows) {
		_, err := tx.Exec(ctx, `
			INSERT INTO products (category_id, name, description, price, purchase_price, stock, is_active, image, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`,
			product.CategoryID, product.Name, product.Description, product.Price, product.PurchasePrice,
			product.Stock, product.IsActive, product.ImageURL)
		return err
	}
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		UPDATE products SET category_id = $1, description = $2, price = $3, purchase_price = $4,
			stock = $5, is_active = $6, image = $7, updated_at = NOW()
		WHERE id = $8`,
		product.CategoryID, product.Description, product.Price, product.PurchasePrice,
		product.Stock, product.IsActive, product.ImageURL, existingID)
	return err
}

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.PurchasePrice,
		&p.Stock, &p.IsActive, &p.Barcode, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
