package order

import (
	"errors"
	"slices"
	"time"

	"vendorhub/internal/core/domain/model/kernel"
)

// VendorView is what one vendor may see of an order. It carries the caller's
// own portion only; no field depends on another vendor's data.
type VendorView struct {
	OrderID       kernel.UUID
	OverallStatus OverallStatus
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
	Portion       PortionView
}

type PortionView struct {
	VendorID kernel.VendorID
	Status   PortionStatus
	Items    []Item
	Subtotal kernel.Money
}

// NewVendorView builds a view from an order's header fields and one portion.
// Read models use it when they load a single portion instead of the aggregate.
func NewVendorView(
	orderID kernel.UUID,
	overallStatus OverallStatus,
	paymentStatus PaymentStatus,
	createdAt time.Time,
	portion *Portion,
) (VendorView, error) {
	if err := errors.Join(orderID.Validate(), overallStatus.Validate(), paymentStatus.Validate(), portion.Validate()); err != nil {
		return VendorView{}, err
	}

	return VendorView{
		OrderID:       orderID,
		OverallStatus: overallStatus,
		PaymentStatus: paymentStatus,
		CreatedAt:     createdAt.UTC(),
		Portion: PortionView{
			VendorID: portion.vendorID,
			Status:   portion.status,
			Items:    slices.Clone(portion.items),
			Subtotal: portion.subtotal,
		},
	}, nil
}
