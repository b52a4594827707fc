// Package queries contains the vendor-facing read models. Every query is
// scoped to one vendor and returns order.VendorView values, so a vendor only
// ever receives its own portion of an order.
package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/domain/model/order"
	"vendorhub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultReadTimeout bounds one query round trip when the handler is built
// without an explicit timeout.
const DefaultReadTimeout = 3 * time.Second

// vendorPortionsSelect joins every order with the portion element that belongs
// to the vendor. The containment filter is served by the GIN index on
// portions; the lateral join then picks the single matching element.
const vendorPortionsSelect = `
	SELECT
		o.id,
		o.overall_status,
		o.payment_status,
		o.created_at,
		p.portion
	FROM orders o
	CROSS JOIN LATERAL jsonb_array_elements(o.portions) AS p(portion)
	WHERE o.portions @> ?::jsonb
		AND p.portion->>'vendor_id' = ?`

const vendorOrdering = `
	ORDER BY o.created_at DESC, o.id ASC`

// portionDocument mirrors one element of the stored portions array.
type portionDocument struct {
	VendorID string `json:"vendor_id"`
	Status   int    `json:"status"`
	Items    []struct {
		ID           string          `json:"item_id"`
		Name         string          `json:"name"`
		Quantity     int             `json:"quantity"`
		PricePerItem decimal.Decimal `json:"price_per_item"`
		TotalPrice   decimal.Decimal `json:"total_price"`
	} `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func (d portionDocument) toDomain() (*order.Portion, error) {
	vendorID, err := kernel.NewVendorID(d.VendorID)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(d.Items))
	for _, it := range d.Items {
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

	subtotal, err := kernel.NewMoney(d.Subtotal)
	if err != nil {
		return nil, err
	}
	return order.RestorePortion(vendorID, order.PortionStatus(d.Status), items, subtotal)
}

// vendorRow is one order header with at most one portion element.
type vendorRow struct {
	id            uuid.UUID
	overallStatus int
	paymentStatus int
	createdAt     time.Time
	portion       []byte
}

func scanVendorRow(rows *sql.Rows) (vendorRow, error) {
	var r vendorRow
	err := rows.Scan(&r.id, &r.overallStatus, &r.paymentStatus, &r.createdAt, &r.portion)
	return r, err
}

// toView decodes the portion and checks that it belongs to vendorID. The SQL
// filter is not trusted on its own: a foreign portion yields errs.ErrForbidden.
func (r vendorRow) toView(vendorID kernel.VendorID) (order.VendorView, error) {
	id, err := kernel.UUIDFromBytes(r.id[:])
	if err != nil {
		return order.VendorView{}, err
	}

	var doc portionDocument
	if err = json.Unmarshal(r.portion, &doc); err != nil {
		return order.VendorView{}, errs.NewValueIsInvalidErrorWithCause("vendorPortions", err)
	}
	if doc.VendorID != vendorID.String() {
		return order.VendorView{}, errs.NewForbiddenError("vendor", vendorID.String())
	}

	portion, err := doc.toDomain()
	if err != nil {
		return order.VendorView{}, err
	}

	return order.NewVendorView(
		id,
		order.OverallStatus(r.overallStatus),
		order.PaymentStatus(r.paymentStatus),
		r.createdAt,
		portion,
	)
}

// vendorFilter is the jsonb containment document matching any order that has
// a portion of vendorID.
func vendorFilter(vendorID kernel.VendorID) (string, error) {
	doc, err := json.Marshal([]map[string]string{{"vendor_id": vendorID.String()}})
	if err != nil {
		return "", err
	}
	return string(doc), nil
}

// listVendorViews runs a vendorPortionsSelect based statement and projects every
// row for vendorID. Rows whose portion does not belong to the vendor are dropped.
func listVendorViews(
	ctx context.Context,
	db *gorm.DB,
	timeout time.Duration,
	operation string,
	vendorID kernel.VendorID,
	condition string,
	args ...any,
) ([]order.VendorView, error) {
	filter, err := vendorFilter(vendorID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	views, err := func() ([]order.VendorView, error) {
		rows, err := db.WithContext(ctx).
			Raw(vendorPortionsSelect+condition+vendorOrdering, append([]any{filter, vendorID.String()}, args...)...).
			Rows()
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		views := make([]order.VendorView, 0)
		for rows.Next() {
			row, scanErr := scanVendorRow(rows)
			if scanErr != nil {
				return nil, scanErr
			}

			view, viewErr := row.toView(vendorID)
			if errors.Is(viewErr, errs.ErrForbidden) {
				continue
			}
			if viewErr != nil {
				return nil, viewErr
			}
			views = append(views, view)
		}

		return views, rows.Err()
	}()
	if err != nil {
		return nil, errs.FromDeadline(operation, err)
	}
	return views, nil
}

func orDefaultTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return DefaultReadTimeout
	}
	return timeout
}
