// Package order provides the multi-vendor Order aggregate and the portion
// state machine that vendors drive.
//
// The package includes:
//   - Order: the aggregate root holding fees, totals and the vendor portions
//   - Portion: one vendor's slice of the order with its items and subtotal
//   - Item: an immutable order line
//   - PortionStatus, OverallStatus, PaymentStatus: the status enumerations
//   - VendorView: the per-vendor projection that hides other vendors' data
//
// Key business rules:
//   - A vendor may only change its own portion
//   - Portion status follows New -> Preparing -> Ready for Pickup -> Picked Up,
//     or New -> Cancelled; no other edge is accepted
//   - Items may only be adjusted when a portion is confirmed (New -> Preparing)
//   - The grand total always equals the portion subtotals plus both fees
//   - The order is promoted to Ready for Pickup once every portion is
//   - Completed and Cancelled orders accept no further updates
package order
