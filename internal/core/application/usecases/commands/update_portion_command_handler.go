package commands

import (
	"context"

	"vendorhub/internal/core/domain/model/order"
	"vendorhub/internal/pkg/metrics"
)

const opUpdatePortion = "update_portion"

// UpdatePortionCommandHandler applies a vendor's portion update as one atomic
// read-modify-write of the order document.
//
// Each attempt reads the order, applies the change to the aggregate and writes
// it back conditionally on the version it read. When another writer got there
// first the attempt is repeated on a fresh read, so two vendors updating
// different portions of the same order both succeed.
type UpdatePortionCommandHandler struct {
	uowFactory OrderUoWFactory
	opts       WriteOptions
}

func NewUpdatePortionCommandHandler(uowFactory OrderUoWFactory, opts WriteOptions) UpdatePortionCommandHandler {
	return UpdatePortionCommandHandler{
		uowFactory: uowFactory,
		opts:       opts.withDefaults(),
	}
}

// Handle returns the caller's projection of the order as stored after the
// update. Resubmitting the current status returns the projection without a
// write.
func (h UpdatePortionCommandHandler) Handle(ctx context.Context, cmd UpdatePortionCommand) (order.VendorView, error) {
	if err := cmd.Validate(); err != nil {
		return order.VendorView{}, err
	}

	var (
		view     order.VendorView
		promoted bool
		changed  bool
	)
	err := h.opts.retryOptimistic(ctx, opUpdatePortion, cmd.OrderID(), func(ctx context.Context) error {
		var err error
		view, changed, promoted, err = h.attempt(ctx, cmd)
		return err
	})
	if err != nil {
		return order.VendorView{}, err
	}

	if changed {
		metrics.PortionTransitions.WithLabelValues(cmd.Status().String()).Inc()
	}
	if promoted {
		metrics.OrderPromotions.Inc()
		metrics.OrderStatusChanges.WithLabelValues(order.OverallReadyForPickup.String(), "promotion").Inc()
	}
	return view, nil
}

func (h UpdatePortionCommandHandler) attempt(
	ctx context.Context,
	cmd UpdatePortionCommand,
) (order.VendorView, bool, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.VendorView{}, false, false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.VendorView{}, false, false, err
	}

	before := o.OverallStatus()
	changed, err := o.ApplyPortionUpdate(cmd.VendorID(), cmd.Status(), cmd.Items())
	if err != nil {
		return order.VendorView{}, false, false, err
	}

	if changed {
		if err = repo.Update(ctx, o); err != nil {
			return order.VendorView{}, false, false, err
		}
		if err = uow.Commit(ctx); err != nil {
			return order.VendorView{}, false, false, err
		}
	}

	view, err := o.ViewFor(cmd.VendorID())
	if err != nil {
		return order.VendorView{}, false, false, err
	}

	promoted := before != o.OverallStatus() && o.OverallStatus() == order.OverallReadyForPickup
	return view, changed, promoted, nil
}
