// Package ports defines the contracts between the order core and its
// infrastructure adapters.
package ports

import (
	"context"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates as single documents.
type OrderRepository interface {
	// Add stores a new order at version 0.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update replaces the stored document only if its version still equals
	// aggregate.Version(), and increments the stored version.
	//
	// A stale version, or a write the database aborted because of a
	// concurrent transaction, is reported as errs.ErrVersionIsInvalid so the
	// caller can re-read and retry.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetSettleableIDs returns the ids of up to limit orders that are not
	// closed yet but whose portions are all Picked Up or Cancelled, oldest
	// first. Documents are not decoded, so one corrupted order cannot hide
	// the others from the caller.
	GetSettleableIDs(ctx context.Context, limit int) ([]kernel.UUID, error)
}
