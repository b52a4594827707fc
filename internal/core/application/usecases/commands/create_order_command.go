package commands

import (
	"errors"
	"time"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/domain/model/order"
	"vendorhub/internal/pkg/errs"
	"vendorhub/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers an order placed by the ordering system.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	portions          []*order.Portion
	platformFee       kernel.Money
	paymentGatewayFee kernel.Money
	paymentStatus     order.PaymentStatus
	createdAt         time.Time

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	portions []*order.Portion,
	platformFee kernel.Money,
	paymentGatewayFee kernel.Money,
	paymentStatus order.PaymentStatus,
	createdAt time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPortions(portions),
		cmd.setFees(platformFee, paymentGatewayFee),
		cmd.setPaymentStatus(paymentStatus),
		cmd.setCreatedAt(createdAt),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c CreateOrderCommand) Portions() []*order.Portion { return c.portions }
func (c CreateOrderCommand) PlatformFee() kernel.Money { return c.platformFee }
func (c CreateOrderCommand) PaymentGatewayFee() kernel.Money { return c.paymentGatewayFee }
func (c CreateOrderCommand) PaymentStatus() order.PaymentStatus { return c.paymentStatus }
func (c CreateOrderCommand) CreatedAt() time.Time { return c.createdAt }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setPortions(portions []*order.Portion) error {
	if len(portions) == 0 {
		return errs.NewValueIsRequiredError("vendorPortions")
	}
	for _, p := range portions {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	c.portions = append([]*order.Portion{}, portions...)
	return nil
}

func (c *CreateOrderCommand) setFees(platformFee, paymentGatewayFee kernel.Money) error {
	if err := errors.Join(platformFee.Validate(), paymentGatewayFee.Validate()); err != nil {
		return err
	}
	c.platformFee = platformFee
	c.paymentGatewayFee = paymentGatewayFee
	return nil
}

func (c *CreateOrderCommand) setPaymentStatus(status order.PaymentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.paymentStatus = status
	return nil
}

func (c *CreateOrderCommand) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	c.createdAt = createdAt
	return nil
}
