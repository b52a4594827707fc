package commands

import (
	"errors"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/domain/model/order"
	"vendorhub/internal/pkg/guard"
)

var ErrUpdatePortionCommandIsNotConstructed = errors.New(
	"UpdatePortionCommand must be created via NewUpdatePortionCommand constructor",
)

// UpdatePortionCommand asks to move the caller's portion to a new status and,
// on confirmation only, to replace its items.
//
// Example:
//
//	cmd, err := NewUpdatePortionCommand(orderID, vendorID, order.PortionPreparing, adjustedItems)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, cmd)
type UpdatePortionCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	vendorID kernel.VendorID
	status   order.PortionStatus
	items    []order.Item

	guard guard.ConstructorGuard
}

// NewUpdatePortionCommand validates the request shape. A nil items slice means
// the items stay as they are; an empty non-nil slice is rejected later by the
// aggregate.
func NewUpdatePortionCommand(
	orderID kernel.UUID,
	vendorID kernel.VendorID,
	status order.PortionStatus,
	items []order.Item,
) (UpdatePortionCommand, error) {
	cmd := UpdatePortionCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setVendorID(vendorID),
		cmd.setStatus(status),
	); err != nil {
		return UpdatePortionCommand{}, err
	}
	if items != nil {
		cmd.items = append([]order.Item{}, items...)
	}

	return cmd, nil
}

func (c UpdatePortionCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePortionCommandIsNotConstructed)
}

func (c UpdatePortionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdatePortionCommand) VendorID() kernel.VendorID {
	return c.vendorID
}

func (c UpdatePortionCommand) Status() order.PortionStatus {
	return c.status
}

// Items returns nil when the command leaves the items unchanged.
func (c UpdatePortionCommand) Items() []order.Item {
	if c.items == nil {
		return nil
	}
	return append([]order.Item{}, c.items...)
}

func (c *UpdatePortionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdatePortionCommand) setVendorID(vendorID kernel.VendorID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}
	c.vendorID = vendorID
	return nil
}

func (c *UpdatePortionCommand) setStatus(status order.PortionStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
