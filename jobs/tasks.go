package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardStatsWarmup refreshes the cached dashboard stats block.
	TaskDashboardStatsWarmup = "dashboard:stats_warmup"
)

// StatsWarmupPayload parameterises a stats warmup run.
type StatsWarmupPayload struct {
	Reason string `json:"reason"`
}

// NewStatsWarmupTask constructs an Asynq task for a dashboard stats refresh.
func NewStatsWarmupTask(reason string) (*asynq.Task, error) {
	data, err := json.Marshal(StatsWarmupPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardStatsWarmup, data), nil
}
