package products

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
)

type fakeRepository struct {
	items  map[int64]*Product
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{items: map[int64]*Product{}, nextID: 1}
}

func (r *fakeRepository) add(p Product) Product {
	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.items[p.ID] = &p
	return p
}

func (r *fakeRepository) ListActive(ctx context.Context) ([]Product, error) {
	var out []Product
	for _, p := range r.items {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeRepository) ListAll(ctx context.Context) ([]Product, error) {
	var out []Product
	for _, p := range r.items {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeRepository) Get(ctx context.Context, id int64) (Product, error) {
	p, ok := r.items[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
	}
	return *p, nil
}

func (r *fakeRepository) Create(ctx context.Context, product Product) (Product, error) {
	if product.Barcode != nil {
		for _, existing := range r.items {
			if existing.Barcode != nil && *existing.Barcode == *product.Barcode {
				return Product{}, fmt.Errorf("%w: barcode already in use", httpx.ErrDuplicate)
			}
		}
	}
	product.IsActive = true
	return r.add(product), nil
}

func (r *fakeRepository) Update(ctx context.Context, id int64, updates map[string]any) (Product, error) {
	p, ok := r.items[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
	}
	for col, v := range updates {
		switch col {
		case "name":
			p.Name = v.(string)
		case "price":
			p.Price = v.(float64)
		case "purchase_price":
			pp := v.(float64)
			p.PurchasePrice = &pp
		case "stock":
			p.Stock = v.(int)
		case "category_id":
			cid := v.(int64)
			p.CategoryID = &cid
		case "description":
			d := v.(string)
			p.Description = &d
		case "barcode":
			b := v.(string)
			p.Barcode = &b
		case "image":
			img := v.(string)
			p.ImageURL = &img
		}
	}
	p.UpdatedAt = time.Now()
	return *p, nil
}

func (r *fakeRepository) Deactivate(ctx context.Context, id int64) error {
	p, ok := r.items[id]
	if !ok {
		return fmt.Errorf("%w: product %d", httpx.ErrNotFound, id)
	}
	p.IsActive = false
	return nil
}

func (r *fakeRepository) UpsertImported(ctx context.Context, tx pgx.Tx, product Product) error {
	return nil
}

func strp(s string) *string   { return &s }
func f64p(v float64) *float64 { return &v }
func intp(v int) *int         { return &v }

func TestCreateTrimsNameAndActivates(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), CreateProductRequest{
		Name:  "  Tempered Glass  ",
		Price: 25000,
		Stock: 10,
	})
	require.NoError(t, err)
	require.Equal(t, "Tempered Glass", p.Name)
	require.True(t, p.IsActive)
}

func TestCreateRejectsBlankName(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateProductRequest{Name: "   "})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), CreateProductRequest{
		Name: "Charger", Price: 50000, Stock: 5, PurchasePrice: f64p(30000),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateProductRequest{
		Price: f64p(55000),
		Stock: intp(8),
	})
	require.NoError(t, err)
	require.InDelta(t, 55000, updated.Price, 0.001)
	require.Equal(t, 8, updated.Stock)
	require.Equal(t, "Charger", updated.Name)
	require.NotNil(t, updated.PurchasePrice)
	require.InDelta(t, 30000, *updated.PurchasePrice, 0.001)
}

func TestUpdateRejectsEmptyPayload(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), CreateProductRequest{Name: "Charger"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, UpdateProductRequest{})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestDeactivateHidesFromActiveListButKeepsGet(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), CreateProductRequest{Name: "Old SKU"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID))

	active, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, active)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)
	require.Equal(t, "Old SKU", got.Name)
}

func TestGetUnknownProduct(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.Get(context.Background(), 42)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestCreateDuplicateBarcode(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateProductRequest{Name: "A", Barcode: strp("8991234500017")})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateProductRequest{Name: "B", Barcode: strp("8991234500017")})
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}
