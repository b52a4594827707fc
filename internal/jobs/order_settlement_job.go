package jobs

import (
	"context"
	"log/slog"

	"vendorhub/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSettlementSchedule runs the settlement every 30 seconds.
const DefaultSettlementSchedule = "*/30 * * * * *"

type settleOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.SettleOrdersCommand) (commands.SettleOrdersResult, error)
}

// OrderSettlementJob periodically closes orders whose portions have all
// reached a terminal status.
type OrderSettlementJob struct {
	handler   settleOrdersHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOrderSettlementJob creates the job. schedule is a cron expression with a
// leading seconds field; an empty one means DefaultSettlementSchedule.
func NewOrderSettlementJob(
	handler settleOrdersHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *OrderSettlementJob {
	if schedule == "" {
		schedule = DefaultSettlementSchedule
	}
	if batchSize <= 0 {
		batchSize = commands.DefaultSettleBatchSize
	}

	return &OrderSettlementJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		// a run that is still going when the next tick fires is not doubled
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.With("component", "order_settlement_job"),
	}
}

// Start schedules the job.
func (j *OrderSettlementJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order settlement job started", "schedule", j.schedule)
	return nil
}

// Run performs a single settlement pass and logs its outcome.
func (j *OrderSettlementJob) Run(ctx context.Context) {
	cmd, err := commands.NewSettleOrdersCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order settlement job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if result.Completed > 0 || result.Cancelled > 0 {
		j.logger.InfoContext(ctx, "Orders settled",
			"completed", result.Completed,
			"cancelled", result.Cancelled)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Order settlement job failed", "error", err)
	}
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *OrderSettlementJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order settlement job stopped")
}
