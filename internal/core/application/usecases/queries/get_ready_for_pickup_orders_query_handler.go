package queries

import (
	"context"
	"time"

	"vendorhub/internal/core/domain/model/order"

	"gorm.io/gorm"
)

const opListReadyForPickup = "list_ready_for_pickup"

// GetReadyForPickupOrdersQueryHandler filters on the status of the vendor's
// portion inside the document, not on the order status.
type GetReadyForPickupOrdersQueryHandler struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGetReadyForPickupOrdersQueryHandler(db *gorm.DB, timeout time.Duration) GetReadyForPickupOrdersQueryHandler {
	return GetReadyForPickupOrdersQueryHandler{db: db, timeout: orDefaultTimeout(timeout)}
}

func (h GetReadyForPickupOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetReadyForPickupOrdersQuery,
) ([]order.VendorView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return listVendorViews(ctx, h.db, h.timeout, opListReadyForPickup, query.VendorID(), `
		AND (p.portion->>'status')::int = ?`, int(order.PortionReadyForPickup))
}
