package services_test

import (
	"testing"
	"time"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/domain/model/order"
	"vendorhub/internal/core/domain/services"
	"vendorhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	bakery = kernel.MustNewVendorID("bakery-7")
	dairy  = kernel.MustNewVendorID("dairy-3")
)

func newOrder(t *testing.T) *order.Order {
	t.Helper()

	portions := make([]*order.Portion, 0, 2)
	for _, v := range []kernel.VendorID{bakery, dairy} {
		item, err := order.NewItem("sku", "Item", 1, kernel.MustMoney("5.00"))
		require.NoError(t, err)
		p, err := order.NewPortion(v, []order.Item{item})
		require.NoError(t, err)
		portions = append(portions, p)
	}

	o, err := order.NewOrder(kernel.NewUUID(), portions, kernel.MustMoney("1.00"), kernel.ZeroMoney(),
		order.PaymentPaid, time.Now())
	require.NoError(t, err)
	return o
}

func move(t *testing.T, o *order.Order, v kernel.VendorID, statuses ...order.PortionStatus) {
	t.Helper()
	for _, s := range statuses {
		_, err := o.ApplyPortionUpdate(v, s, nil)
		require.NoError(t, err)
	}
}

func TestOrderSettler_Settle(t *testing.T) {
	settler := services.NewOrderSettler()

	t.Run("should complete order once every portion is picked up", func(t *testing.T) {
		o := newOrder(t)
		move(t, o, bakery, order.PortionPreparing, order.PortionReadyForPickup, order.PortionPickedUp)
		move(t, o, dairy, order.PortionPreparing, order.PortionReadyForPickup, order.PortionPickedUp)

		status, err := settler.Settle(o)

		require.NoError(t, err)
		assert.Equal(t, order.OverallCompleted, status)
		assert.Equal(t, order.OverallCompleted, o.OverallStatus())
	})

	t.Run("should complete order when one portion was cancelled", func(t *testing.T) {
		o := newOrder(t)
		move(t, o, bakery, order.PortionCancelled)
		move(t, o, dairy, order.PortionPreparing, order.PortionReadyForPickup, order.PortionPickedUp)

		status, err := settler.Settle(o)

		require.NoError(t, err)
		assert.Equal(t, order.OverallCompleted, status)
	})

	t.Run("should cancel order when every portion was cancelled", func(t *testing.T) {
		o := newOrder(t)
		move(t, o, bakery, order.PortionCancelled)
		move(t, o, dairy, order.PortionCancelled)

		status, err := settler.Settle(o)

		require.NoError(t, err)
		assert.Equal(t, order.OverallCancelled, status)
		assert.Equal(t, order.OverallCancelled, o.OverallStatus())
	})

	t.Run("should refuse while a portion is still moving", func(t *testing.T) {
		o := newOrder(t)
		move(t, o, bakery, order.PortionPreparing, order.PortionReadyForPickup, order.PortionPickedUp)
		move(t, o, dairy, order.PortionPreparing, order.PortionReadyForPickup)

		status, err := settler.Settle(o)

		require.ErrorIs(t, err, services.ErrOrderNotSettleable)
		assert.Equal(t, order.OverallUnknown, status)
		assert.Equal(t, order.OverallReadyForPickup, o.OverallStatus())
	})

	t.Run("should refuse an order that is already closed", func(t *testing.T) {
		o := newOrder(t)
		_, err := o.ChangeStatus(order.OverallCancelled)
		require.NoError(t, err)

		_, err = settler.Settle(o)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should refuse an unconstructed order", func(t *testing.T) {
		_, err := settler.Decide(&order.Order{})

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}
