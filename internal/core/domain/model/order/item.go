package order

import (
	"errors"
	"fmt"
	"strings"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/pkg/errs"
	"vendorhub/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was built with a literal.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one line of a vendor portion. It is an immutable value object;
// TotalPrice always equals Quantity × PricePerItem.
type Item struct { //nolint:recvcheck //using for validation
	id           string
	name         string
	quantity     int
	pricePerItem kernel.Money
	totalPrice   kernel.Money

	guard guard.ConstructorGuard
}

// NewItem validates a line and computes its total.
func NewItem(id, name string, quantity int, pricePerItem kernel.Money) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setQuantity(quantity),
		item.setPricePerItem(pricePerItem),
	); err != nil {
		return Item{}, err
	}

	total, err := item.pricePerItem.MulInt(item.quantity)
	if err != nil {
		return Item{}, err
	}
	item.totalPrice = total
	return item, nil
}

// NewItemWithTotal is NewItem for callers that also send a line total; the
// supplied total must match the computed one.
func NewItemWithTotal(id, name string, quantity int, pricePerItem, totalPrice kernel.Money) (Item, error) {
	item, err := NewItem(id, name, quantity, pricePerItem)
	if err != nil {
		return Item{}, err
	}
	if err = totalPrice.Validate(); err != nil {
		return Item{}, err
	}
	if !item.totalPrice.IsEqual(totalPrice) {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("totalPrice",
			fmt.Errorf("%s does not equal %d × %s", totalPrice, quantity, pricePerItem))
	}
	return item, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) ID() string { return i.id }
func (i Item) Name() string { return i.name }
func (i Item) Quantity() int { return i.quantity }
func (i Item) PricePerItem() kernel.Money { return i.pricePerItem }
func (i Item) TotalPrice() kernel.Money { return i.totalPrice }

func (i *Item) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("itemId")
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPricePerItem(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.pricePerItem = price
	return nil
}

// validateItems checks a replacement item list: non-empty, constructed items,
// unique ids.
func validateItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
		if _, dup := seen[it.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %q appears twice", it.id))
		}
		seen[it.id] = struct{}{}
	}
	return nil
}

func sumItems(items []Item) kernel.Money {
	totals := make([]kernel.Money, len(items))
	for i, it := range items {
		totals[i] = it.totalPrice
	}
	return kernel.SumMoney(totals...)
}
