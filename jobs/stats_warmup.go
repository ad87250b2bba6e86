package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/finsight-pos/finsight-pos/internal/dashboard"
	jobmetrics "github.com/finsight-pos/finsight-pos/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// StatsWarmupJob recomputes the dashboard stats block so interactive
// requests hit a warm cache instead of paying the aggregate scan.
type StatsWarmupJob struct {
	Dashboard *dashboard.Service
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
}

// NewStatsWarmupJob wires dependencies for the warmup handler.
func NewStatsWarmupJob(dashboardSvc *dashboard.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *StatsWarmupJob {
	return &StatsWarmupJob{Dashboard: dashboardSvc, Logger: logger, Metrics: metrics}
}

// Handle processes dashboard warmup tasks.
func (j *StatsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Dashboard == nil {
		return errors.New("stats warmup: handler not configured")
	}
	var payload StatsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskDashboardStatsWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("reason", payload.Reason))
	start := time.Now()

	runCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	if _, err := j.Dashboard.RefreshStats(runCtx); err != nil {
		resultErr = err
		logger.Error("refresh dashboard stats", slog.Any("error", err))
		return resultErr
	}

	logger.Info("dashboard stats warmed", slog.Duration("duration", time.Since(start)))
	return resultErr
}

func (j *StatsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskDashboardStatsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskDashboardStatsWarmup))
}

func (j *StatsWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
