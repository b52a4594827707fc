package services

import (
	"errors"

	"vendorhub/internal/core/domain/model/order"
)

// ErrOrderNotSettleable is returned when at least one portion can still move.
var ErrOrderNotSettleable = errors.New("order is not settleable")

// OrderSettler closes orders whose portions have all stopped moving.
//
// Business rules:
//   - the order itself must not be Completed or Cancelled yet
//   - every portion must be Picked Up or Cancelled
//   - one picked up portion is enough for the order to be Completed
//   - an order whose portions were all cancelled is Cancelled
//
// Example usage:
//
//	settler := services.NewOrderSettler()
//	status, err := settler.Settle(o)
//	if errors.Is(err, services.ErrOrderNotSettleable) {
//	    // some vendor is still working on the order
//	}
type OrderSettler struct{}

func NewOrderSettler() OrderSettler {
	return OrderSettler{}
}

// Decide returns the final status for o without changing it.
func (s OrderSettler) Decide(o *order.Order) (order.OverallStatus, error) {
	if err := o.Validate(); err != nil {
		return order.OverallUnknown, err
	}
	if err := o.OverallStatus().ValidateUpdatable(); err != nil {
		return order.OverallUnknown, err
	}

	pickedUp := false
	for _, p := range o.Portions() {
		if !p.Status().IsTerminal() {
			return order.OverallUnknown, ErrOrderNotSettleable
		}
		if p.Status() == order.PortionPickedUp {
			pickedUp = true
		}
	}

	if pickedUp {
		return order.OverallCompleted, nil
	}
	return order.OverallCancelled, nil
}

// Settle applies the decision to o and returns the status it was moved to.
func (s OrderSettler) Settle(o *order.Order) (order.OverallStatus, error) {
	final, err := s.Decide(o)
	if err != nil {
		return order.OverallUnknown, err
	}
	if _, err = o.ChangeStatus(final); err != nil {
		return order.OverallUnknown, err
	}
	return final, nil
}
