package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
)

// Repository defines persistence operations for categories.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id int64) (Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	UpsertBySlug(ctx context.Context, tx pgx.Tx, category Category) (Category, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, slug, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Category, error) {
	var c Category
	err := r.pool.QueryRow(ctx, `SELECT id, name, slug, created_at, updated_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, fmt.Errorf("%w: category %d", httpx.ErrNotFound, id)
		}
		return Category{}, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, category Category) (Category, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, slug, created_at, updated_at) VALUES ($1, $2, NOW(), NOW())
		 RETURNING id, created_at, updated_at`,
		category.Name, category.Slug,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Category{}, fmt.Errorf("%w: slug %q", httpx.ErrDuplicate, category.Slug)
		}
		return Category{}, err
	}
	return category, nil
}

// UpsertBySlug inserts or refreshes a category inside an import transaction.
func (r *repository) UpsertBySlug(ctx context.Context, tx pgx.Tx, category Category) (Category, error) {
	err := tx.QueryRow(ctx,
		`INSERT INTO categories (name, slug, created_at, updated_at) VALUES ($1, $2, NOW(), NOW())
		 ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		category.Name, category.Slug,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return Category{}, err
	}
	return category, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
