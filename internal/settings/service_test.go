package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/finsight-pos/finsight-pos/internal/catalog/categories"
	"github.com/finsight-pos/finsight-pos/internal/catalog/products"
	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
	"github.com/finsight-pos/finsight-pos/internal/sales"
	"github.com/finsight-pos/finsight-pos/internal/users"
)

type fakeStore struct {
	users        []users.User
	categories   []categories.Category
	products     []products.Product
	sales        []sales.Sale
	importedCats []categories.Category
	importedProd []products.Product
	importCalls  int
}

func (s *fakeStore) Users(ctx context.Context) ([]users.User, error) { return s.users, nil }
func (s *fakeStore) Categories(ctx context.Context) ([]categories.Category, error) {
	return s.categories, nil
}
func (s *fakeStore) Products(ctx context.Context) ([]products.Product, error) {
	return s.products, nil
}
func (s *fakeStore) Sales(ctx context.Context) ([]sales.Sale, error) { return s.sales, nil }

func (s *fakeStore) ImportCatalog(ctx context.Context, cats []categories.Category, prods []products.Product) (ImportSummary, error) {
	s.importCalls++
	s.importedCats = cats
	s.importedProd = prods
	return ImportSummary{CategoriesUpserted: len(cats), ProductsUpserted: len(prods)}, nil
}

func TestExportAssemblesAllBlocks(t *testing.T) {
	store := &fakeStore{
		users:      []users.User{{ID: 1, Name: "Admin"}},
		categories: []categories.Category{{ID: 1, Name: "Accessories", Slug: "accessories"}},
		products:   []products.Product{{ID: 1, Name: "Phone Case"}},
		sales:      []sales.Sale{{ID: 1, InvoiceNumber: "TRX-20260829-AB12CD34"}},
	}
	svc := NewService(store)
	fixed := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	snapshot, err := svc.Export(context.Background())
	require.NoError(t, err)
	require.Equal(t, SnapshotVersion, snapshot.Version)
	require.Equal(t, fixed, snapshot.Timestamp)
	require.Len(t, snapshot.Data.Users, 1)
	require.Len(t, snapshot.Data.Categories, 1)
	require.Len(t, snapshot.Data.Products, 1)
	require.Len(t, snapshot.Data.Transactions, 1)
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	_, err := svc.Import(context.Background(), Snapshot{
		Version: "2.0",
		Data:    SnapshotData{Categories: []categories.Category{{Name: "X"}}},
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Zero(t, store.importCalls)
}

func TestImportRejectsEmptySnapshot(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	_, err := svc.Import(context.Background(), Snapshot{Version: SnapshotVersion})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Zero(t, store.importCalls)
}

func TestImportOnlyTouchesCatalog(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	snapshot := Snapshot{
		Version: SnapshotVersion,
		Data: SnapshotData{
			Users:        []users.User{{ID: 9, Name: "Should be ignored"}},
			Categories:   []categories.Category{{ID: 1, Name: "Accessories", Slug: "accessories"}},
			Products:     []products.Product{{ID: 1, Name: "Phone Case"}, {ID: 2, Name: "Charger"}},
			Transactions: []sales.Sale{{ID: 5}},
		},
	}

	summary, err := svc.Import(context.Background(), snapshot)
	require.NoError(t, err)
	require.Equal(t, 1, summary.CategoriesUpserted)
	require.Equal(t, 2, summary.ProductsUpserted)
	require.Equal(t, 1, store.importCalls)
	require.Len(t, store.importedCats, 1)
	require.Len(t, store.importedProd, 2)
}
