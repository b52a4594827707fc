package commands

import (
	"context"

	"vendorhub/internal/pkg/metrics"
)

const opChangeOrderStatus = "change_order_status"

// ChangeOrderStatusCommandHandler runs an operator status change through the
// same optimistic read-modify-write as vendor updates.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	opts       WriteOptions
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	opts WriteOptions,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		opts:       opts.withDefaults(),
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var changed bool
	err := h.opts.retryOptimistic(ctx, opChangeOrderStatus, cmd.OrderID(), func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		repo := uow.OrderRepository()
		o, err := repo.Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		if changed, err = o.ChangeStatus(cmd.Status()); err != nil || !changed {
			return err
		}

		if err = repo.Update(ctx, o); err != nil {
			return err
		}
		return uow.Commit(ctx)
	})
	if err != nil {
		return err
	}

	if changed {
		metrics.OrderStatusChanges.WithLabelValues(cmd.Status().String(), "operator").Inc()
	}
	return nil
}
