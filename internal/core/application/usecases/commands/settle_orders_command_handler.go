package commands

import (
	"context"
	"errors"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/domain/model/order"
	"vendorhub/internal/core/domain/services"
	"vendorhub/internal/pkg/errs"
	"vendorhub/internal/pkg/metrics"
)

const opSettleOrders = "settle_orders"

// SettleOrdersCommandHandler completes or cancels orders once no vendor can
// move their portion any more.
//
// Candidates are listed in one read; each one is then settled in its own
// optimistic transaction, so a vendor or operator write that lands in between
// is re-read rather than overwritten. An order that stopped being settleable
// after the re-read is skipped.
type SettleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	settler    services.OrderSettler
	opts       WriteOptions
}

func NewSettleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	settler services.OrderSettler,
	opts WriteOptions,
) SettleOrdersCommandHandler {
	return SettleOrdersCommandHandler{
		uowFactory: uowFactory,
		settler:    settler,
		opts:       opts.withDefaults(),
	}
}

// SettleOrdersResult reports what one run did.
type SettleOrdersResult struct {
	Completed int
	Cancelled int
}

// Handle settles every candidate it can. Failures of single orders do not stop
// the batch; they are joined into the returned error.
func (h SettleOrdersCommandHandler) Handle(ctx context.Context, cmd SettleOrdersCommand) (SettleOrdersResult, error) {
	var result SettleOrdersResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	candidates, err := h.candidates(ctx, cmd.BatchSize())
	if err != nil {
		return result, err
	}

	var failures []error
	for _, id := range candidates {
		status, settleErr := h.settle(ctx, id)
		switch {
		case errors.Is(settleErr, services.ErrOrderNotSettleable),
			errors.Is(settleErr, errs.ErrInvalidTransition):
			// a vendor or operator moved the order after it was listed
			continue
		case settleErr != nil:
			failures = append(failures, settleErr)
			continue
		}

		metrics.OrderStatusChanges.WithLabelValues(status.String(), "settlement").Inc()
		if status == order.OverallCompleted {
			result.Completed++
		} else {
			result.Cancelled++
		}
	}

	return result, errors.Join(failures...)
}

func (h SettleOrdersCommandHandler) candidates(ctx context.Context, limit int) ([]kernel.UUID, error) {
	var ids []kernel.UUID
	err := h.opts.withTimeout(ctx, opSettleOrders, func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		var err error
		ids, err = uow.OrderRepository().GetSettleableIDs(ctx, limit)
		return err
	})
	return ids, err
}

func (h SettleOrdersCommandHandler) settle(ctx context.Context, id kernel.UUID) (order.OverallStatus, error) {
	var status order.OverallStatus
	err := h.opts.retryOptimistic(ctx, opSettleOrders, id, func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		repo := uow.OrderRepository()
		o, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}

		if status, err = h.settler.Settle(o); err != nil {
			return err
		}

		if err = repo.Update(ctx, o); err != nil {
			return err
		}
		return uow.Commit(ctx)
	})
	return status, err
}
