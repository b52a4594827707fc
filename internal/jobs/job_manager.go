package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderSettlementJob *OrderSettlementJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	settleOrdersHandler settleOrdersHandler,
	settlementSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderSettlementJob: NewOrderSettlementJob(settleOrdersHandler, settlementSchedule, 0, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderSettlementJob.Start(); err != nil {
		return fmt.Errorf("failed to start order settlement job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderSettlementJob.Stop()
}
