package order

import (
	"errors"
	"fmt"
	"slices"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/pkg/errs"
)

// ErrPortionIsNotConstructed is returned when a Portion was built with a literal.
var ErrPortionIsNotConstructed = errors.New("Portion must be created via NewPortion or RestorePortion")

// Portion is one vendor's slice of an order. It is an entity inside the Order
// aggregate and is only mutated through Order.ApplyPortionUpdate.
//
// Invariant: subtotal == Σ items[].TotalPrice().
type Portion struct {
	vendorID kernel.VendorID
	status   PortionStatus
	items    []Item
	subtotal kernel.Money

	isConstructed bool
}

// NewPortion creates a portion in status New.
func NewPortion(vendorID kernel.VendorID, items []Item) (*Portion, error) {
	return RestorePortion(vendorID, PortionNew, items, sumItems(items))
}

// RestorePortion rebuilds a portion from storage, checking the subtotal invariant.
func RestorePortion(
	vendorID kernel.VendorID,
	status PortionStatus,
	items []Item,
	subtotal kernel.Money,
) (*Portion, error) {
	if err := errors.Join(vendorID.Validate(), status.Validate(), validateItems(items), subtotal.Validate()); err != nil {
		return nil, err
	}
	if computed := sumItems(items); !computed.IsEqual(subtotal) {
		return nil, errs.NewValueIsInvalidErrorWithCause("vendorSubtotal",
			fmt.Errorf("stored %s, items sum to %s", subtotal, computed))
	}

	return &Portion{
		vendorID:      vendorID,
		status:        status,
		items:         slices.Clone(items),
		subtotal:      subtotal,
		isConstructed: true,
	}, nil
}

func (p *Portion) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPortionIsNotConstructed
	}
	return nil
}

func (p *Portion) VendorID() kernel.VendorID { return p.vendorID }
func (p *Portion) Status() PortionStatus { return p.status }
func (p *Portion) Subtotal() kernel.Money { return p.subtotal }

// Items returns a copy; callers cannot mutate the portion through it.
func (p *Portion) Items() []Item {
	return slices.Clone(p.items)
}

func (p *Portion) clone() *Portion {
	c := *p
	c.items = slices.Clone(p.items)
	return &c
}
