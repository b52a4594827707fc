// Package kernel provides the value objects shared by the order model.
//
// The package includes:
//   - UUID: identifier of an order document
//   - VendorID: identity of the vendor owning a portion
//   - Money: non-negative decimal amount with two-place rounding
//
// All values are immutable; zero values are invalid and fail Validate, so an
// aggregate restored from storage can be checked before use.
package kernel
