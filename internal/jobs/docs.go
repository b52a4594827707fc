// Package jobs provides scheduled background tasks for the vendor fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OrderSettlementJob closes orders that no vendor can move any more: the order
// becomes Completed when at least one portion was picked up and Cancelled when
// every portion was cancelled.
//
// # Usage
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(settleOrdersHandler, cfg.OrderSettlementSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules take six fields, the first one being seconds. The default
// "*/30 * * * * *" runs every 30 seconds. A pass that is still running when the
// next tick fires is skipped.
//
// # Error Handling
//
// Failures of single orders do not stop a pass. They are logged together once
// the pass is over; the next tick retries them.
package jobs
