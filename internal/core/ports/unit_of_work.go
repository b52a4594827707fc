package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command attempt.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of one read-modify-write.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails with gorm.ErrInvalidTransaction when Begin was not called.
	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	// OrderRepository is bound to the transaction opened by Begin, or to the
	// plain connection when no transaction is active.
	OrderRepository() OrderRepository
}
