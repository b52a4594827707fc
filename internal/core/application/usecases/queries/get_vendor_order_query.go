package queries

import (
	"errors"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/pkg/guard"
)

var (
	ErrGetVendorOrderQueryIsNotConstructed = errors.New(
		"GetVendorOrderQuery must be created via NewGetVendorOrderQuery constructor",
	)
)

// GetVendorOrderQuery fetches one order as seen by one vendor.
type GetVendorOrderQuery struct {
	orderID  kernel.UUID
	vendorID kernel.VendorID

	guard guard.ConstructorGuard
}

func NewGetVendorOrderQuery(orderID kernel.UUID, vendorID kernel.VendorID) (GetVendorOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), vendorID.Validate()); err != nil {
		return GetVendorOrderQuery{}, err
	}
	return GetVendorOrderQuery{orderID: orderID, vendorID: vendorID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetVendorOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetVendorOrderQueryIsNotConstructed)
}

func (q GetVendorOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetVendorOrderQuery) VendorID() kernel.VendorID {
	return q.vendorID
}
