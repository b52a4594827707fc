// Package orderrepo stores Order aggregates as one row per order, with the
// vendor portions kept as a jsonb document next to the order-level columns.
package orderrepo

import (
	"time"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the stored order document. Portions live in a jsonb column so
// that the whole order is read and written as one unit. The GIN index serves
// the vendor containment filter portions @> '[{"vendor_id": "..."}]'.
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OverallStatus     int             `gorm:"not null;index"`
	PaymentStatus     int             `gorm:"not null"`
	PlatformFee       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentGatewayFee decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	GrandTotal        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Portions          []PortionDTO    `gorm:"type:jsonb;serializer:json;not null;index:idx_orders_portions,type:gin"`
	CreatedAt         time.Time       `gorm:"not null;index"`
	Version           int64           `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// PortionDTO is one element of the portions document.
type PortionDTO struct {
	VendorID string          `json:"vendor_id"`
	Status   int             `json:"status"`
	Items    []ItemDTO       `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type ItemDTO struct {
	ID           string          `json:"item_id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

func fromDomain(aggregate *order.Order) OrderDTO {
	portions := aggregate.Portions()
	dtos := make([]PortionDTO, 0, len(portions))
	for _, p := range portions {
		dtos = append(dtos, portionFromDomain(p))
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		OverallStatus:     int(aggregate.OverallStatus()),
		PaymentStatus:     int(aggregate.PaymentStatus()),
		PlatformFee:       aggregate.PlatformFee().Decimal(),
		PaymentGatewayFee: aggregate.PaymentGatewayFee().Decimal(),
		GrandTotal:        aggregate.GrandTotal().Decimal(),
		Portions:          dtos,
		CreatedAt:         aggregate.CreatedAt(),
		Version:           aggregate.Version(),
	}
}

func portionFromDomain(p *order.Portion) PortionDTO {
	items := p.Items()
	dtos := make([]ItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, ItemDTO{
			ID:           it.ID(),
			Name:         it.Name(),
			Quantity:     it.Quantity(),
			PricePerItem: it.PricePerItem().Decimal(),
			TotalPrice:   it.TotalPrice().Decimal(),
		})
	}

	return PortionDTO{
		VendorID: p.VendorID().String(),
		Status:   int(p.Status()),
		Items:    dtos,
		Subtotal: p.Subtotal().Decimal(),
	}
}

// toDomain rebuilds the aggregate through RestoreOrder, so a document that
// breaks an invariant surfaces as an error instead of being served.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	portions := make([]*order.Portion, 0, len(dto.Portions))
	for _, p := range dto.Portions {
		portion, portionErr := p.ToDomain()
		if portionErr != nil {
			return nil, portionErr
		}
		portions = append(portions, portion)
	}

	platformFee, err := kernel.NewMoney(dto.PlatformFee)
	if err != nil {
		return nil, err
	}
	gatewayFee, err := kernel.NewMoney(dto.PaymentGatewayFee)
	if err != nil {
		return nil, err
	}
	grandTotal, err := kernel.NewMoney(dto.GrandTotal)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		order.OverallStatus(dto.OverallStatus),
		order.PaymentStatus(dto.PaymentStatus),
		platformFee,
		gatewayFee,
		grandTotal,
		portions,
		dto.CreatedAt,
		dto.Version,
	)
}

// ToDomain rebuilds a portion, re-checking its subtotal.
func (p PortionDTO) ToDomain() (*order.Portion, error) {
	vendorID, err := kernel.NewVendorID(p.VendorID)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(p.Items))
	for _, it := range p.Items {
		price, priceErr := kernel.NewMoney(it.PricePerItem)
		if priceErr != nil {
			return nil, priceErr
		}
		total, totalErr := kernel.NewMoney(it.TotalPrice)
		if totalErr != nil {
			return nil, totalErr
		}
		item, itemErr := order.NewItemWithTotal(it.ID, it.Name, it.Quantity, price, total)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	subtotal, err := kernel.NewMoney(p.Subtotal)
	if err != nil {
		return nil, err
	}

	return order.RestorePortion(vendorID, order.PortionStatus(p.Status), items, subtotal)
}
