package queries

import (
	"context"
	"time"

	"vendorhub/internal/core/domain/model/order"
	"vendorhub/internal/pkg/errs"

	"gorm.io/gorm"
)

const opGetVendorOrder = "get_vendor_order"

// GetVendorOrderQueryHandler loads the order header and only the caller's
// portion element; the other portions never leave the database.
type GetVendorOrderQueryHandler struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGetVendorOrderQueryHandler(db *gorm.DB, timeout time.Duration) GetVendorOrderQueryHandler {
	return GetVendorOrderQueryHandler{db: db, timeout: orDefaultTimeout(timeout)}
}

// Handle fails with errs.ErrObjectNotFound when the order does not exist and
// with errs.ErrForbidden when it exists without a portion of the vendor.
func (h GetVendorOrderQueryHandler) Handle(ctx context.Context, query GetVendorOrderQuery) (order.VendorView, error) {
	if err := query.Validate(); err != nil {
		return order.VendorView{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.overall_status,
			o.payment_status,
			o.created_at,
			p.portion
		FROM orders o
		LEFT JOIN LATERAL (
			SELECT e.portion
			FROM jsonb_array_elements(o.portions) AS e(portion)
			WHERE e.portion->>'vendor_id' = ?
			LIMIT 1
		) p ON true
		WHERE o.id = ?
	`, query.VendorID().String(), query.OrderID().Bytes()).Rows()
	if err != nil {
		return order.VendorView{}, errs.FromDeadline(opGetVendorOrder, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return order.VendorView{}, errs.FromDeadline(opGetVendorOrder, err)
		}
		return order.VendorView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	row, err := scanVendorRow(rows)
	if err != nil {
		return order.VendorView{}, errs.FromDeadline(opGetVendorOrder, err)
	}
	if row.portion == nil {
		return order.VendorView{}, errs.NewForbiddenError("vendor", query.VendorID().String())
	}

	return row.toView(query.VendorID())
}
