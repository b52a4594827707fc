package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/core/domain/model/order"
	"vendorhub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres error codes that mean a concurrent transaction won the race.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker is notified of every aggregate written through the repository.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order document.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return errs.NewConflictErrorWithCause("order", aggregate.ID().String(), 1, err)
		}
		return Classify(err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the document only if the stored version still equals the one
// the aggregate was read at, then bumps the stored version.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expected := dto.Version
	dto.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(&dto).
		Select("*").
		Omit("id", "created_at").
		Where("version = ?", expected).
		Updates(&dto)
	if result.Error != nil {
		return Classify(result.Error)
	}

	if result.RowsAffected == 0 {
		exists, err := r.exists(ctx, aggregate.ID())
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return errs.NewVersionIsInvalidErrorWithCause("order",
			fmt.Errorf("order %s is no longer at version %d", aggregate.ID(), expected))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, Classify(err)
	}

	return toDomain(dto)
}

// GetSettleableIDs returns open orders whose portions are all Picked Up or
// Cancelled. The portion check runs inside Postgres over the jsonb document;
// each order is decoded later by whoever settles it.
func (r *GormOrderRepository) GetSettleableIDs(ctx context.Context, limit int) ([]kernel.UUID, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var rows []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("overall_status NOT IN ?", []int{int(order.OverallCompleted), int(order.OverallCancelled)}).
		Where(`NOT EXISTS (
			SELECT 1 FROM jsonb_array_elements(portions) AS p
			WHERE (p->>'status')::int NOT IN ?
		)`, []int{int(order.PortionPickedUp), int(order.PortionCancelled)}).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Pluck("id", &rows).Error
	if err != nil {
		return nil, Classify(err)
	}

	ids := make([]kernel.UUID, 0, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (r *GormOrderRepository) exists(ctx context.Context, id kernel.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return false, Classify(err)
	}
	return count > 0, nil
}

// Classify reports transactions that Postgres aborted because of a concurrent
// writer as a stale version, so the caller retries them like a lost race.
func Classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected) {
		return errs.NewVersionIsInvalidErrorWithCause("order", err)
	}
	return err
}
