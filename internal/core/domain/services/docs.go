// Package services provides domain services that make decisions about an
// Order aggregate from outside the aggregate itself.
//
// The package includes:
//   - OrderSettler: closes an order once every vendor portion has reached a
//     terminal status
//
// The settlement decision does not belong to the vendors driving their own
// portions, so it lives here and is invoked by the scheduled settlement job.
package services
