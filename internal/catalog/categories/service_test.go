package categories

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
	items  map[int64]*Category
	nextID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{items: map[int64]*Category{}, nextID: 1}
}

func (r *fakeRepository) List(ctx context.Context) ([]Category, error) {
	var out []Category
	for _, c := range r.items {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeRepository) Get(ctx context.Context, id int64) (Category, error) {
	c, ok := r.items[id]
	if !ok {
		return Category{}, fmt.Errorf("%w: category %d", httpx.ErrNotFound, id)
	}
	return *c, nil
}

func (r *fakeRepository) Create(ctx context.Context, category Category) (Category, error) {
	for _, existing := range r.items {
		if existing.Slug == category.Slug {
			return Category{}, fmt.Errorf("%w: slug %q", httpx.ErrDuplicate, category.Slug)
		}
	}
	category.ID = r.nextID
	r.nextID++
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	r.items[category.ID] = &category
	return category, nil
}

func (r *fakeRepository) UpsertBySlug(ctx context.Context, tx pgx.Tx, category Category) (Category, error) {
	return category, nil
}

func TestCreateDerivesSlug(t *testing.T) {
	svc := NewService(newFakeRepository())

	c, err := svc.Create(context.Background(), "Phone Cases & Covers", "")
	require.NoError(t, err)
	require.Equal(t, "phone-cases-covers", c.Slug)
}

func TestCreateKeepsExplicitSlug(t *testing.T) {
	svc := NewService(newFakeRepository())

	c, err := svc.Create(context.Background(), "Accessories", "aksesoris")
	require.NoError(t, err)
	require.Equal(t, "aksesoris", c.Slug)
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.Create(context.Background(), "Chargers", "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "chargers", "")
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.Create(context.Background(), "   ", "")
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Phone Cases":        "phone-cases",
		"Kabel & Charger":    "kabel-charger",
		"Écouteurs Après":    "ecouteurs-apres",
		"  spaced  out  ":    "spaced-out",
		"UPPER lower 123":    "upper-lower-123",
		"---":                "",
		"Aksesoris HP murah": "aksesoris-hp-murah",
	}
	for input, want := range cases {
		require.Equal(t, want, Slugify(input), "input %q", input)
	}
}
