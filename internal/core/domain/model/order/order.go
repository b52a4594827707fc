package order

import (
	"errors"
	"fmt"
	"time"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the aggregate root of one customer transaction that spans one or
// more vendors. Each vendor owns exactly one Portion and may only change that
// portion; the order-wide status is derived from the portions.
//
// Order follows these invariants:
//   - portions is never empty and vendor ids are unique within it
//   - every portion's subtotal equals the sum of its item totals
//   - grandTotal == Σ portion subtotals + platformFee + paymentGatewayFee
//   - overallStatus only moves forward, except for explicit cancellation
//   - createdAt, fees and paymentStatus never change after creation
//
// Order is not safe for concurrent mutation. Concurrent writers are serialized
// by the store through the version number: every persisted write is
// conditional on Version() still matching the stored document.
type Order struct {
	id            kernel.UUID
	overallStatus OverallStatus
	paymentStatus PaymentStatus
	platformFee   kernel.Money
	gatewayFee    kernel.Money
	grandTotal    kernel.Money
	portions      []*Portion
	createdAt     time.Time

	// version is the stored document version this aggregate was read at.
	version int64

	isConstructed bool
}

// NewOrder creates an order as the ordering system places it: every portion
// New, the aggregate Pending Confirmation, the grand total computed from the
// portions and both fees.
//
// Example:
//
//	items := []order.Item{bread, milk}
//	portion, _ := order.NewPortion(kernel.MustNewVendorID("bakery-7"), items)
//	o, err := order.NewOrder(kernel.NewUUID(), []*order.Portion{portion},
//	    kernel.MustMoney("1.50"), kernel.MustMoney("0.30"), order.PaymentPaid, time.Now())
func NewOrder(
	id kernel.UUID,
	portions []*Portion,
	platformFee kernel.Money,
	paymentGatewayFee kernel.Money,
	paymentStatus PaymentStatus,
	createdAt time.Time,
) (*Order, error) {
	if err := validatePortions(portions); err != nil {
		return nil, err
	}
	for _, p := range portions {
		if p.status != PortionNew {
			return nil, errs.NewValueIsInvalidErrorWithCause("vendorPortions",
				fmt.Errorf("portion of %s starts as %s, expected %s", p.vendorID, p.status, PortionNew))
		}
	}
	if err := errors.Join(platformFee.Validate(), paymentGatewayFee.Validate()); err != nil {
		return nil, err
	}

	grandTotal := computeGrandTotal(portions, platformFee, paymentGatewayFee)
	return RestoreOrder(id, OverallPendingConfirmation, paymentStatus, platformFee, paymentGatewayFee,
		grandTotal, portions, createdAt, 0)
}

// RestoreOrder rebuilds an order read from storage and re-checks every
// invariant, so a corrupted document is reported instead of served.
func RestoreOrder(
	id kernel.UUID,
	overallStatus OverallStatus,
	paymentStatus PaymentStatus,
	platformFee kernel.Money,
	paymentGatewayFee kernel.Money,
	grandTotal kernel.Money,
	portions []*Portion,
	createdAt time.Time,
	version int64,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		overallStatus.Validate(),
		paymentStatus.Validate(),
		platformFee.Validate(),
		paymentGatewayFee.Validate(),
		grandTotal.Validate(),
		validatePortions(portions),
	); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}
	if version < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is negative", version))
	}
	if computed := computeGrandTotal(portions, platformFee, paymentGatewayFee); !computed.IsEqual(grandTotal) {
		return nil, errs.NewValueIsInvalidErrorWithCause("grandTotal",
			fmt.Errorf("stored %s, portions and fees sum to %s", grandTotal, computed))
	}

	cloned := make([]*Portion, len(portions))
	for i, p := range portions {
		cloned[i] = p.clone()
	}

	return &Order{
		id:            id,
		overallStatus: overallStatus,
		paymentStatus: paymentStatus,
		platformFee:   platformFee,
		gatewayFee:    paymentGatewayFee,
		grandTotal:    grandTotal,
		portions:      cloned,
		createdAt:     createdAt.UTC().Truncate(time.Microsecond),
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) OverallStatus() OverallStatus { return o.overallStatus }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) PlatformFee() kernel.Money { return o.platformFee }
func (o *Order) PaymentGatewayFee() kernel.Money { return o.gatewayFee }
func (o *Order) GrandTotal() kernel.Money { return o.grandTotal }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) Version() int64 { return o.version }

// Portions returns copies of all portions in their stored order. Only
// persistence adapters and operators may see the full list; vendor-facing
// code must go through ViewFor.
func (o *Order) Portions() []*Portion {
	out := make([]*Portion, len(o.portions))
	for i, p := range o.portions {
		out[i] = p.clone()
	}
	return out
}

// PortionFor returns the caller's portion or errs.ErrForbidden when the vendor
// takes no part in this order.
func (o *Order) PortionFor(vendorID kernel.VendorID) (*Portion, error) {
	idx, err := o.portionIndex(vendorID)
	if err != nil {
		return nil, err
	}
	return o.portions[idx].clone(), nil
}

// ApplyPortionUpdate moves the vendor's portion to newStatus and, for the
// confirmation edge New -> Preparing only, replaces its items.
//
// Rules, in order:
//   - the vendor must own a portion (errs.ErrForbidden)
//   - the order must not be Completed or Cancelled (errs.ErrInvalidTransition)
//   - resubmitting the current status without items is a no-op
//   - newStatus must be a legal edge from the current status (errs.ErrInvalidTransition)
//   - updatedItems are only accepted with New -> Preparing (errs.ErrValueIsInvalid)
//
// When items change, the portion subtotal is recomputed and the delta is
// added to the grand total. When the portion becomes Ready for Pickup and
// every other portion already is, the order is promoted to Ready for Pickup.
//
// Nothing is modified unless the whole update succeeds. The returned bool
// reports whether anything changed, so callers can skip the write.
func (o *Order) ApplyPortionUpdate(
	vendorID kernel.VendorID,
	newStatus PortionStatus,
	updatedItems []Item,
) (bool, error) {
	if err := newStatus.Validate(); err != nil {
		return false, err
	}

	idx, err := o.portionIndex(vendorID)
	if err != nil {
		return false, err
	}

	if err = o.overallStatus.ValidateUpdatable(); err != nil {
		return false, err
	}

	current := o.portions[idx]
	if newStatus == current.status {
		if updatedItems != nil {
			return false, errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("items can only change together with a status transition"))
		}
		return false, nil
	}

	nextStatus, err := current.status.TransitionTo(newStatus)
	if err != nil {
		return false, err
	}

	next := current.clone()
	next.status = nextStatus
	grandTotal := o.grandTotal

	if updatedItems != nil {
		if current.status != PortionNew || nextStatus != PortionPreparing {
			return false, errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("items can only be adjusted when moving from %s to %s", PortionNew, PortionPreparing))
		}
		if err = validateItems(updatedItems); err != nil {
			return false, err
		}

		next.items = append([]Item(nil), updatedItems...)
		next.subtotal = sumItems(next.items)

		grandTotal, err = grandTotal.Add(next.subtotal).Sub(current.subtotal)
		if err != nil {
			return false, err
		}
	}

	overall := o.overallStatus
	if nextStatus == PortionReadyForPickup && overall < OverallReadyForPickup &&
		o.othersAre(idx, PortionReadyForPickup) {
		if overall, err = o.overallStatus.TransitionTo(OverallReadyForPickup); err != nil {
			return false, err
		}
	}

	o.portions[idx] = next
	o.grandTotal = grandTotal
	o.overallStatus = overall
	return true, nil
}

// ChangeStatus moves the aggregate status. Used by operators and by the
// settlement process; vendors never call it directly. Setting the current
// status again is a no-op.
func (o *Order) ChangeStatus(newStatus OverallStatus) (bool, error) {
	if newStatus == o.overallStatus {
		if err := o.overallStatus.Validate(); err != nil {
			return false, err
		}
		return false, nil
	}

	next, err := o.overallStatus.TransitionTo(newStatus)
	if err != nil {
		return false, err
	}

	o.overallStatus = next
	return true, nil
}

// ViewFor projects the order for one vendor: the caller's own portion and the
// order-level fields that reveal nothing about other vendors. Grand total and
// fees are left out because they include the other vendors' subtotals.
func (o *Order) ViewFor(vendorID kernel.VendorID) (VendorView, error) {
	idx, err := o.portionIndex(vendorID)
	if err != nil {
		return VendorView{}, err
	}
	return NewVendorView(o.id, o.overallStatus, o.paymentStatus, o.createdAt, o.portions[idx])
}

func (o *Order) portionIndex(vendorID kernel.VendorID) (int, error) {
	if err := vendorID.Validate(); err != nil {
		return -1, err
	}
	for i, p := range o.portions {
		if p.vendorID.IsEqual(vendorID) {
			return i, nil
		}
	}
	return -1, errs.NewForbiddenErrorWithCause("vendor", vendorID.String(),
		fmt.Errorf("vendor has no portion in order %s", o.id))
}

// othersAre reports whether every portion except the one at skip has status.
func (o *Order) othersAre(skip int, status PortionStatus) bool {
	for i, p := range o.portions {
		if i != skip && p.status != status {
			return false
		}
	}
	return true
}

func validatePortions(portions []*Portion) error {
	if len(portions) == 0 {
		return errs.NewValueIsRequiredError("vendorPortions")
	}
	seen := make(map[string]struct{}, len(portions))
	for _, p := range portions {
		if err := p.Validate(); err != nil {
			return err
		}
		key := p.vendorID.String()
		if _, dup := seen[key]; dup {
			return errs.NewValueIsInvalidErrorWithCause("vendorPortions",
				fmt.Errorf("vendor %s has more than one portion", key))
		}
		seen[key] = struct{}{}
	}
	return nil
}

func computeGrandTotal(portions []*Portion, platformFee, gatewayFee kernel.Money) kernel.Money {
	amounts := make([]kernel.Money, 0, len(portions)+2)
	for _, p := range portions {
		amounts = append(amounts, p.subtotal)
	}
	amounts = append(amounts, platformFee, gatewayFee)
	return kernel.SumMoney(amounts...)
}
