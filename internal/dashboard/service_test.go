package dashboard

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeLine struct {
	price, purchasePrice float64
	quantity             int
}

type fakeSale struct {
	total     float64
	createdAt time.Time
	lines     []fakeLine
}

type fakeProductRow struct {
	stock    int
	isActive bool
}

type fakeRepository struct {
	sales    []fakeSale
	products []fakeProductRow
	calls    int
}

func (r *fakeRepository) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	r.calls++
	var sum float64
	for _, s := range r.sales {
		if !s.createdAt.Before(since) {
			sum += s.total
		}
	}
	return sum, nil
}

func (r *fakeRepository) TransactionCountSince(ctx context.Context, since time.Time) (int, error) {
	r.calls++
	count := 0
	for _, s := range r.sales {
		if !s.createdAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepository) ProfitSince(ctx context.Context, since time.Time) (float64, error) {
	r.calls++
	var sum float64
	for _, s := range r.sales {
		if !s.createdAt.Before(since) {
			for _, l := range s.lines {
				sum += (l.price - l.purchasePrice) * float64(l.quantity)
			}
		}
	}
	return sum, nil
}

func (r *fakeRepository) ActiveProductCount(ctx context.Context) (int, error) {
	r.calls++
	count := 0
	for _, p := range r.products {
		if p.isActive {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepository) LowStockCount(ctx context.Context, threshold int) (int, error) {
	r.calls++
	count := 0
	for _, p := range r.products {
		if p.isActive && p.stock < threshold {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepository) DailyRevenue(ctx context.Context, from, to time.Time) (map[string]float64, error) {
	r.calls++
	revenue := map[string]float64{}
	for _, s := range r.sales {
		if !s.createdAt.Before(from) && s.createdAt.Before(to) {
			revenue[s.createdAt.Format("2006-01-02")] += s.total
		}
	}
	return revenue, nil
}

// revenueSince / costSince recompute the window the long way so the profit
// aggregate can be cross-checked against revenue minus cost of goods sold.
func (r *fakeRepository) revenueAndCostSince(since time.Time) (float64, float64) {
	var revenue, cost float64
	for _, s := range r.sales {
		if !s.createdAt.Before(since) {
			for _, l := range s.lines {
				revenue += l.price * float64(l.quantity)
				cost += l.purchasePrice * float64(l.quantity)
			}
		}
	}
	return revenue, cost
}

func newService(t *testing.T, repo *fakeRepository, cache *Cache, now time.Time) *Service {
	t.Helper()
	svc := NewService(repo, cache, slog.New(slog.DiscardHandler), 10)
	svc.now = func() time.Time { return now }
	return svc
}

func TestStatsWindows(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)
	repo := &fakeRepository{
		sales: []fakeSale{
			{total: 100, createdAt: now.Add(-1 * time.Hour), lines: []fakeLine{{price: 50, purchasePrice: 30, quantity: 2}}},
			{total: 200, createdAt: now.AddDate(0, 0, -5), lines: []fakeLine{{price: 200, purchasePrice: 150, quantity: 1}}},
			{total: 300, createdAt: now.AddDate(0, -2, 0), lines: []fakeLine{{price: 100, purchasePrice: 60, quantity: 3}}},
			{total: 400, createdAt: now.AddDate(-1, 0, 0), lines: []fakeLine{{price: 400, purchasePrice: 100, quantity: 1}}},
		},
		products: []fakeProductRow{{stock: 5, isActive: true}, {stock: 50, isActive: true}, {stock: 0, isActive: false}},
	}
	svc := newService(t, repo, nil, now)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 100, stats.RevenueToday, 0.001)
	require.Equal(t, 1, stats.TransactionCountToday)
	require.Equal(t, 2, stats.TotalActiveProducts)
	require.Equal(t, 1, stats.LowStockCount)
	require.InDelta(t, 40, stats.ProfitToday, 0.001)
	require.InDelta(t, 90, stats.ProfitMonth, 0.001)
	require.InDelta(t, 210, stats.ProfitYear, 0.001)
}

func TestProfitMatchesRevenueMinusCost(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepository{
		sales: []fakeSale{
			{total: 0, createdAt: now.Add(-2 * time.Hour), lines: []fakeLine{{price: 25000, purchasePrice: 15000, quantity: 2}, {price: 40000, purchasePrice: 22000, quantity: 1}}},
			{total: 0, createdAt: now.AddDate(0, 0, -10), lines: []fakeLine{{price: 10000, purchasePrice: 4000, quantity: 5}}},
		},
	}
	svc := newService(t, repo, nil, now)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	revenue, cost := repo.revenueAndCostSince(yearStart)
	require.InDelta(t, revenue-cost, stats.ProfitYear, 0.001)
}

func TestLowStockBoundary(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepository{
		products: []fakeProductRow{
			{stock: 9, isActive: true},
			{stock: 10, isActive: true},
			{stock: 11, isActive: true},
			{stock: 3, isActive: false},
		},
	}
	svc := newService(t, repo, nil, now)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, stats.LowStockCount)
}

func TestChartZeroFillsSevenDays(t *testing.T) {
	now := time.Date(2026, 8, 29, 18, 30, 0, 0, time.UTC) // a Saturday
	repo := &fakeRepository{
		sales: []fakeSale{
			{total: 500, createdAt: now.Add(-1 * time.Hour)},
			{total: 250, createdAt: now.AddDate(0, 0, -3)},
			{total: 999, createdAt: now.AddDate(0, 0, -7)}, // outside window
		},
	}
	svc := newService(t, repo, nil, now)

	points, err := svc.Chart(context.Background())
	require.NoError(t, err)
	require.Len(t, points, 7)

	require.Equal(t, "2026-08-23", points[0].Date)
	require.Equal(t, "Minggu", points[0].Day)
	require.Equal(t, "2026-08-29", points[6].Date)
	require.Equal(t, "Sabtu", points[6].Day)

	require.InDelta(t, 500, points[6].Revenue, 0.001)
	require.InDelta(t, 250, points[3].Revenue, 0.001)
	var zeros int
	for _, p := range points {
		if p.Revenue == 0 {
			zeros++
		}
	}
	require.Equal(t, 5, zeros)
}

func TestStatsServedFromCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute)

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepository{products: []fakeProductRow{{stock: 1, isActive: true}}}
	svc := newService(t, repo, cache, now)

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	callsAfterMiss := repo.calls
	require.Positive(t, callsAfterMiss)

	second, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, callsAfterMiss, repo.calls)

	mr.FastForward(2 * time.Minute)
	_, err = svc.Stats(context.Background())
	require.NoError(t, err)
	require.Greater(t, repo.calls, callsAfterMiss)
}
