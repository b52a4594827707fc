package queries

import (
	"context"
	"time"

	"vendorhub/internal/core/domain/model/order"

	"gorm.io/gorm"
)

const opListActiveOrders = "list_active_orders"

// GetActiveVendorOrdersQueryHandler reads the vendor's active orders straight
// from the order documents.
//
// Example:
//
//	handler := NewGetActiveVendorOrdersQueryHandler(db, 3*time.Second)
//	views, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrTimeout) {
//	    // the store did not answer in time
//	}
type GetActiveVendorOrdersQueryHandler struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGetActiveVendorOrdersQueryHandler(db *gorm.DB, timeout time.Duration) GetActiveVendorOrdersQueryHandler {
	return GetActiveVendorOrdersQueryHandler{db: db, timeout: orDefaultTimeout(timeout)}
}

// Handle returns the views newest first, ties broken by order id. No match is
// an empty, non-nil slice.
func (h GetActiveVendorOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveVendorOrdersQuery,
) ([]order.VendorView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	active := order.ActiveOverallStatuses()
	statuses := make([]int, 0, len(active))
	for _, s := range active {
		statuses = append(statuses, int(s))
	}

	return listVendorViews(ctx, h.db, h.timeout, opListActiveOrders, query.VendorID(), `
		AND o.overall_status IN ?`, statuses)
}
