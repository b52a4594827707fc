package http

import (
	"errors"
	"time"

	"vendorhub/internal/core/application/usecases/commands"
	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/domain/model/order"
	"vendorhub/internal/generated/servers"
)

func toVendorOrder(v order.VendorView) servers.VendorOrder {
	items := make([]servers.Item, 0, len(v.Portion.Items))
	for _, it := range v.Portion.Items {
		items = append(items, servers.Item{
			ItemId:       it.ID(),
			Name:         it.Name(),
			Quantity:     it.Quantity(),
			PricePerItem: it.PricePerItem().String(),
			TotalPrice:   it.TotalPrice().String(),
		})
	}

	return servers.VendorOrder{
		OrderId:       v.OrderID.Bytes(),
		OverallStatus: servers.OverallStatus(v.OverallStatus.String()),
		PaymentStatus: servers.PaymentStatus(v.PaymentStatus.String()),
		CreatedAt:     v.CreatedAt,
		Portion: servers.VendorPortion{
			VendorId:       v.Portion.VendorID.String(),
			Status:         servers.PortionStatus(v.Portion.Status.String()),
			Items:          items,
			VendorSubtotal: v.Portion.Subtotal.String(),
		},
	}
}

func toItems(in []servers.ItemInput) ([]order.Item, error) {
	items := make([]order.Item, 0, len(in))
	var failures []error
	for _, it := range in {
		item, err := toItem(it)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		items = append(items, item)
	}
	if err := errors.Join(failures...); err != nil {
		return nil, err
	}
	return items, nil
}

func toItem(in servers.ItemInput) (order.Item, error) {
	price, err := kernel.MoneyFromString(in.PricePerItem)
	if err != nil {
		return order.Item{}, err
	}
	if in.TotalPrice == nil {
		return order.NewItem(in.ItemId, in.Name, in.Quantity, price)
	}

	total, err := kernel.MoneyFromString(*in.TotalPrice)
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItemWithTotal(in.ItemId, in.Name, in.Quantity, price, total)
}

// toCreateOrderCommand maps the ordering system's payload. A missing
// createdAt means the order was placed now.
func toCreateOrderCommand(body servers.NewOrder, now time.Time) (commands.CreateOrderCommand, error) {
	id, err := kernel.UUIDFromBytes(body.OrderId[:])
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	portions := make([]*order.Portion, 0, len(body.VendorPortions))
	for _, p := range body.VendorPortions {
		vendorID, vendorErr := kernel.NewVendorID(p.VendorId)
		if vendorErr != nil {
			return commands.CreateOrderCommand{}, vendorErr
		}
		items, itemsErr := toItems(p.Items)
		if itemsErr != nil {
			return commands.CreateOrderCommand{}, itemsErr
		}
		portion, portionErr := order.NewPortion(vendorID, items)
		if portionErr != nil {
			return commands.CreateOrderCommand{}, portionErr
		}
		portions = append(portions, portion)
	}

	platformFee, err := kernel.MoneyFromString(body.PlatformFee)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	gatewayFee, err := kernel.MoneyFromString(body.PaymentGatewayFee)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	paymentStatus, err := order.ParsePaymentStatus(string(body.PaymentStatus))
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	createdAt := now
	if body.CreatedAt != nil {
		createdAt = *body.CreatedAt
	}

	return commands.NewCreateOrderCommand(id, portions, platformFee, gatewayFee, paymentStatus, createdAt.UTC())
}
