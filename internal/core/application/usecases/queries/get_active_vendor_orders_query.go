package queries

import (
	"errors"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/pkg/guard"
)

var (
	ErrGetActiveVendorOrdersQueryIsNotConstructed = errors.New(
		"GetActiveVendorOrdersQuery must be created via NewGetActiveVendorOrdersQuery constructor",
	)
)

// GetActiveVendorOrdersQuery lists the orders a vendor still has to work on:
// every order holding the vendor's portion whose aggregate status is not
// Completed or Cancelled.
//
// Example:
//
//	query, err := NewGetActiveVendorOrdersQuery(vendorID)
//	if err != nil {
//	    return err
//	}
//	views, err := handler.Handle(ctx, query)
type GetActiveVendorOrdersQuery struct {
	vendorID kernel.VendorID

	guard guard.ConstructorGuard
}

func NewGetActiveVendorOrdersQuery(vendorID kernel.VendorID) (GetActiveVendorOrdersQuery, error) {
	if err := vendorID.Validate(); err != nil {
		return GetActiveVendorOrdersQuery{}, err
	}
	return GetActiveVendorOrdersQuery{vendorID: vendorID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveVendorOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveVendorOrdersQueryIsNotConstructed)
}

func (q GetActiveVendorOrdersQuery) VendorID() kernel.VendorID {
	return q.vendorID
}
