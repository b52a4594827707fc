// Package servers provides the transport types and echo bindings of the
// OpenAPI contract in api/openapi.yaml.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	VendorHeaderScopes = "VendorHeader.Scopes"
)

// Defines values for OverallStatus.
const (
	OverallStatusCancelled           OverallStatus = "Cancelled"
	OverallStatusCompleted           OverallStatus = "Completed"
	OverallStatusConfirmed           OverallStatus = "Confirmed"
	OverallStatusInProgress          OverallStatus = "In Progress"
	OverallStatusPendingConfirmation OverallStatus = "Pending Confirmation"
	OverallStatusReadyForPickup      OverallStatus = "Ready for Pickup"
)

// Defines values for PaymentStatus.
const (
	PaymentStatusFailed  PaymentStatus = "Failed"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPending PaymentStatus = "Pending"
)

// Defines values for PortionStatus.
const (
	PortionStatusCancelled      PortionStatus = "Cancelled"
	PortionStatusNew            PortionStatus = "New"
	PortionStatusPickedUp       PortionStatus = "Picked Up"
	PortionStatusPreparing      PortionStatus = "Preparing"
	PortionStatusReadyForPickup PortionStatus = "Ready for Pickup"
)

// Amount defines model for Amount.
type Amount = string

// ChangeOrderStatusRequest defines model for ChangeOrderStatusRequest.
type ChangeOrderStatusRequest struct {
	Status OverallStatus `json:"status"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Item defines model for Item.
type Item struct {
	ItemId       string `json:"itemId"`
	Name         string `json:"name"`
	PricePerItem Amount `json:"pricePerItem"`
	Quantity     int    `json:"quantity"`
	TotalPrice   Amount `json:"totalPrice"`
}

// ItemInput defines model for ItemInput.
type ItemInput struct {
	ItemId       string  `json:"itemId"`
	Name         string  `json:"name"`
	PricePerItem Amount  `json:"pricePerItem"`
	Quantity     int     `json:"quantity"`
	TotalPrice   *Amount `json:"totalPrice,omitempty"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	CreatedAt         *time.Time         `json:"createdAt,omitempty"`
	OrderId           openapi_types.UUID `json:"orderId"`
	PaymentGatewayFee Amount             `json:"paymentGatewayFee"`
	PaymentStatus     PaymentStatus      `json:"paymentStatus"`
	PlatformFee       Amount             `json:"platformFee"`
	VendorPortions    []NewVendorPortion `json:"vendorPortions"`
}

// NewVendorPortion defines model for NewVendorPortion.
type NewVendorPortion struct {
	Items    []ItemInput `json:"items"`
	VendorId string      `json:"vendorId"`
}

// OverallStatus defines model for OverallStatus.
type OverallStatus string

// PaymentStatus defines model for PaymentStatus.
type PaymentStatus string

// PortionStatus defines model for PortionStatus.
type PortionStatus string

// UpdatePortionRequest defines model for UpdatePortionRequest.
type UpdatePortionRequest struct {
	Items  *[]ItemInput  `json:"items,omitempty"`
	Status PortionStatus `json:"status"`
}

// VendorOrder defines model for VendorOrder.
type VendorOrder struct {
	CreatedAt     time.Time          `json:"createdAt"`
	OrderId       openapi_types.UUID `json:"orderId"`
	OverallStatus OverallStatus      `json:"overallStatus"`
	PaymentStatus PaymentStatus      `json:"paymentStatus"`
	Portion       VendorPortion      `json:"portion"`
}

// VendorPortion defines model for VendorPortion.
type VendorPortion struct {
	Items          []Item        `json:"items"`
	Status         PortionStatus `json:"status"`
	VendorId       string        `json:"vendorId"`
	VendorSubtotal Amount        `json:"vendorSubtotal"`
}

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// UpdateVendorPortionJSONRequestBody defines body for UpdateVendorPortion for application/json ContentType.
type UpdateVendorPortionJSONRequestBody = UpdatePortionRequest

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// ChangeOrderStatusJSONRequestBody defines body for ChangeOrderStatus for application/json ContentType.
type ChangeOrderStatusJSONRequestBody = ChangeOrderStatusRequest
