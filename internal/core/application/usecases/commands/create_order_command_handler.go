package commands

import (
	"context"

	"vendorhub/internal/core/domain/model/order"
)

const opCreateOrder = "create_order"

// CreateOrderCommandHandler stores a new order with every portion New and the
// order Pending Confirmation.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, DefaultWriteOptions())
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrConflict) {
//	    // an order with this id already exists
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	opts       WriteOptions
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, opts WriteOptions) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		opts:       opts.withDefaults(),
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Portions(),
		cmd.PlatformFee(),
		cmd.PaymentGatewayFee(),
		cmd.PaymentStatus(),
		cmd.CreatedAt(),
	)
	if err != nil {
		return err
	}

	return h.opts.withTimeout(ctx, opCreateOrder, func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		if err := uow.OrderRepository().Add(ctx, o); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
