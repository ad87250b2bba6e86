package dashboard

import (
	"context"
	"log/slog"
	"time"
)

// weekdayNames renders chart labels the way the storefront displays them.
var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "Minggu",
	time.Monday:    "Senin",
	time.Tuesday:   "Selasa",
	time.Wednesday: "Rabu",
	time.Thursday:  "Kamis",
	time.Friday:    "Jumat",
	time.Saturday:  "Sabtu",
}

const chartDays = 7

// Service computes dashboard aggregates over committed sales.
type Service struct {
	repo              Repository
	cache             *Cache
	logger            *slog.Logger
	lowStockThreshold int
	now               func() time.Time
}

// NewService builds Service. cache may be nil, in which case every call
// recomputes.
func NewService(repo Repository, cache *Cache, logger *slog.Logger, lowStockThreshold int) *Service {
	return &Service{
		repo:              repo,
		cache:             cache,
		logger:            logger,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

// Stats returns the summary block, served from cache when fresh.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	if s.cache != nil {
		if stats, ok := s.cache.GetStats(ctx); ok {
			return stats, nil
		}
	}
	stats, err := s.computeStats(ctx)
	if err != nil {
		return Stats{}, err
	}
	if s.cache != nil {
		if err := s.cache.SetStats(ctx, stats); err != nil {
			s.logger.Warn("cache dashboard stats", slog.Any("error", err))
		}
	}
	return stats, nil
}

// RefreshStats recomputes the summary block and overwrites the cache. Used
// by the background warmup job so interactive requests mostly hit cache.
func (s *Service) RefreshStats(ctx context.Context) (Stats, error) {
	stats, err := s.computeStats(ctx)
	if err != nil {
		return Stats{}, err
	}
	if s.cache != nil {
		if err := s.cache.SetStats(ctx, stats); err != nil {
			s.logger.Warn("cache dashboard stats", slog.Any("error", err))
		}
	}
	return stats, nil
}

func (s *Service) computeStats(ctx context.Context) (Stats, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	var stats Stats
	var err error
	if stats.RevenueToday, err = s.repo.RevenueSince(ctx, dayStart); err != nil {
		return Stats{}, err
	}
	if stats.TransactionCountToday, err = s.repo.TransactionCountSince(ctx, dayStart); err != nil {
		return Stats{}, err
	}
	if stats.TotalActiveProducts, err = s.repo.ActiveProductCount(ctx); err != nil {
		return Stats{}, err
	}
	if stats.LowStockCount, err = s.repo.LowStockCount(ctx, s.lowStockThreshold); err != nil {
		return Stats{}, err
	}
	if stats.ProfitToday, err = s.repo.ProfitSince(ctx, dayStart); err != nil {
		return Stats{}, err
	}
	if stats.ProfitMonth, err = s.repo.ProfitSince(ctx, monthStart); err != nil {
		return Stats{}, err
	}
	if stats.ProfitYear, err = s.repo.ProfitSince(ctx, yearStart); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Chart returns the trailing seven days of revenue, oldest first. Days with
// no sales appear with zero revenue so the series always has seven points.
func (s *Service) Chart(ctx context.Context) ([]ChartPoint, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := dayStart.AddDate(0, 0, -(chartDays - 1))
	to := dayStart.AddDate(0, 0, 1)

	revenue, err := s.repo.DailyRevenue(ctx, from, to)
	if err != nil {
		return nil, err
	}

	points := make([]ChartPoint, 0, chartDays)
	for i := 0; i < chartDays; i++ {
		day := from.AddDate(0, 0, i)
		date := day.Format("2006-01-02")
		points = append(points, ChartPoint{
			Date:    date,
			Day:     weekdayNames[day.Weekday()],
			Revenue: revenue[date],
		})
	}
	return points, nil
}
