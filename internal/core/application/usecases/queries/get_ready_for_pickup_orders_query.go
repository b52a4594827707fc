package queries

import (
	"errors"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/pkg/guard"
)

var (
	ErrGetReadyForPickupOrdersQueryIsNotConstructed = errors.New(
		"GetReadyForPickupOrdersQuery must be created via NewGetReadyForPickupOrdersQuery constructor",
	)
)

// GetReadyForPickupOrdersQuery lists the orders in which the vendor's own
// portion waits for the courier. The aggregate status is not considered.
type GetReadyForPickupOrdersQuery struct {
	vendorID kernel.VendorID

	guard guard.ConstructorGuard
}

func NewGetReadyForPickupOrdersQuery(vendorID kernel.VendorID) (GetReadyForPickupOrdersQuery, error) {
	if err := vendorID.Validate(); err != nil {
		return GetReadyForPickupOrdersQuery{}, err
	}
	return GetReadyForPickupOrdersQuery{vendorID: vendorID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetReadyForPickupOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetReadyForPickupOrdersQueryIsNotConstructed)
}

func (q GetReadyForPickupOrdersQuery) VendorID() kernel.VendorID {
	return q.vendorID
}
