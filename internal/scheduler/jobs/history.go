package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/topmonde/internal/history"
	"github.com/wonny/topmonde/pkg/logger"
)

// HistoryJob refreshes the monthly price history dataset and the rolling
// window performers table.
type HistoryJob struct {
	service  *history.Service
	schedule string
	logger   *logger.Logger
}

// NewHistoryJob creates the history refresh job.
func NewHistoryJob(service *history.Service, schedule string, log *logger.Logger) *HistoryJob {
	return &HistoryJob{
		service:  service,
		schedule: schedule,
		logger:   log,
	}
}

func (j *HistoryJob) Name() string     { return "history_refresh" }
func (j *HistoryJob) Schedule() string { return j.schedule }

// Run refreshes the history dataset. The same-day cache makes a second
// trigger within a day cheap.
func (j *HistoryJob) Run(ctx context.Context) error {
	summary, err := j.service.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("history refresh: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"tickers":    summary.Tickers,
		"windows":    summary.Windows,
		"cache_used": summary.CacheUsed,
	}).Info("History refresh job finished")

	return nil
}
