// Package postgres provides the GORM-based Unit of Work that bounds one
// read-modify-write of an order document.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	o, err := uow.OrderRepository().Get(ctx, id)
//	// ... mutate o
//	if err = uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err // errs.ErrVersionIsInvalid means a concurrent writer won
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns at most one transaction and must not be shared
// between goroutines; create one per attempt.
package postgres

import (
	"context"

	"vendorhub/internal/adapters/out/postgres/orderrepo"
	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// CommitHook is called after a successful commit with the ids of the
// aggregates written in the transaction.
type CommitHook func(ctx context.Context, ids []kernel.UUID)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db    *gorm.DB
	hooks []CommitHook
}

// NewGormUnitOfWorkFactory creates a factory; hooks run after every commit
// that wrote at least one aggregate.
func NewGormUnitOfWorkFactory(db *gorm.DB, hooks ...CommitHook) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, hooks: hooks}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		hooks:             f.hooks,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork wraps one GORM transaction and records every aggregate its
// repositories write.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	hooks             []CommitHook
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit closes the transaction and runs the commit hooks.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return orderrepo.Classify(err)
	}

	if len(uow.trackedAggregates) > 0 {
		ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
		for _, tracked := range uow.trackedAggregates {
			ids = append(ids, tracked.ID)
		}
		for _, hook := range uow.hooks {
			hook(ctx, ids)
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Rollback discards the transaction and everything tracked in it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// TrackAggregate is called by repositories after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the ids written since the last commit or rollback.
func (uow *GormUnitOfWork) TrackedAggregates() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		ids = append(ids, tracked.ID)
	}
	return ids
}
