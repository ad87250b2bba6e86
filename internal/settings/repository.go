package settings

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finsight-pos/finsight-pos/internal/catalog/categories"
	"github.com/finsight-pos/finsight-pos/internal/catalog/products"
	"github.com/finsight-pos/finsight-pos/internal/platform/db"
	"github.com/finsight-pos/finsight-pos/internal/sales"
	"github.com/finsight-pos/finsight-pos/internal/users"
)

// Store reads the export snapshot blocks and applies catalog restores.
type Store interface {
	Users(ctx context.Context) ([]users.User, error)
	Categories(ctx context.Context) ([]categories.Category, error)
	Products(ctx context.Context) ([]products.Product, error)
	Sales(ctx context.Context) ([]sales.Sale, error)
	ImportCatalog(ctx context.Context, cats []categories.Category, prods []products.Product) (ImportSummary, error)
}

type store struct {
	pool       *pgxpool.Pool
	users      users.Repository
	categories categories.Repository
	products   products.Repository
}

// NewStore builds the PostgreSQL-backed Store on top of the feature
// repositories so export and import share their queries and upsert rules.
func NewStore(pool *pgxpool.Pool, usersRepo users.Repository, categoriesRepo categories.Repository, productsRepo products.Repository) Store {
	return &store{pool: pool, users: usersRepo, categories: categoriesRepo, products: productsRepo}
}

func (s *store) Users(ctx context.Context) ([]users.User, error) {
	return s.users.List(ctx)
}

func (s *store) Categories(ctx context.Context) ([]categories.Category, error) {
	return s.categories.List(ctx)
}

func (s *store) Products(ctx context.Context) ([]products.Product, error) {
	return s.products.ListAll(ctx)
}

// Sales exports every transaction with its line items, oldest first.
func (s *store) Sales(ctx context.Context) ([]sales.Sale, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, invoice_number, user_id, total, payment_method, cash_received, change_due, status, created_at
		FROM transactions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []sales.Sale
	index := map[int64]int{}
	for rows.Next() {
		var sale sales.Sale
		if err := rows.Scan(&sale.ID, &sale.InvoiceNumber, &sale.UserID, &sale.Total, &sale.PaymentMethod,
			&sale.CashReceived, &sale.ChangeDue, &sale.Status, &sale.CreatedAt); err != nil {
			return nil, err
		}
		sale.Items = []sales.LineItem{}
		index[sale.ID] = len(result)
		result = append(result, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return result, nil
	}

	itemRows, err := s.pool.Query(ctx, `
		SELECT ti.id, ti.transaction_id, ti.product_id, p.name, ti.quantity, ti.price, ti.purchase_price, ti.subtotal
		FROM transaction_items ti
		JOIN products p ON ti.product_id = p.id
		ORDER BY ti.id`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item sales.LineItem
		if err := itemRows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.Price, &item.PurchasePrice, &item.Subtotal); err != nil {
			return nil, err
		}
		if i, ok := index[item.SaleID]; ok {
			result[i].Items = append(result[i].Items, item)
		}
	}
	return result, itemRows.Err()
}

// ImportCatalog restores categories then products in one transaction.
// Category references inside the file are remapped to the upserted rows, so
// a snapshot taken on another instance lands with consistent foreign keys.
func (s *store) ImportCatalog(ctx context.Context, cats []categories.Category, prods []products.Product) (ImportSummary, error) {
	var summary ImportSummary
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		idMap := make(map[int64]int64, len(cats))
		for _, c := range cats {
			if c.Slug == "" {
				c.Slug = categories.Slugify(c.Name)
			}
			upserted, err := s.categories.UpsertBySlug(ctx, tx, c)
			if err != nil {
				return err
			}
			idMap[c.ID] = upserted.ID
			summary.CategoriesUpserted++
		}

		for _, p := range prods {
			if p.CategoryID != nil {
				if mapped, ok := idMap[*p.CategoryID]; ok {
					p.CategoryID = &mapped
				} else {
					p.CategoryID = nil
				}
			}
			if err := s.products.UpsertImported(ctx, tx, p); err != nil {
				return err
			}
			summary.ProductsUpserted++
		}
		return nil
	})
	if err != nil {
		return ImportSummary{}, err
	}
	return summary, nil
}
