package commands

import (
	"context"
	"errors"
	"time"

	"vendorhub/internal/core/domain/model/kernel"
	"vendorhub/internal/pkg/errs"
	"vendorhub/internal/pkg/metrics"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultStoreTimeout       = 3 * time.Second
	DefaultUpdateMaxAttempts  = 3
	DefaultRetryInitialDelay  = 20 * time.Millisecond
	defaultRetryMaxDelay      = 200 * time.Millisecond
	defaultRetryBackoffFactor = 2
)

// WriteOptions bound every store round trip of a command handler.
type WriteOptions struct {
	// StoreTimeout limits one attempt: the read, the write and the commit.
	StoreTimeout time.Duration

	// MaxAttempts is how many times a lost optimistic write is re-read and
	// re-applied before the handler gives up with errs.ErrConflict.
	MaxAttempts int

	// RetryInitialDelay is the first pause between attempts; later pauses grow
	// exponentially with jitter.
	RetryInitialDelay time.Duration
}

func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		StoreTimeout:      DefaultStoreTimeout,
		MaxAttempts:       DefaultUpdateMaxAttempts,
		RetryInitialDelay: DefaultRetryInitialDelay,
	}
}

// withDefaults replaces non-positive fields with their defaults.
func (o WriteOptions) withDefaults() WriteOptions {
	d := DefaultWriteOptions()
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = d.StoreTimeout
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = d.MaxAttempts
	}
	if o.RetryInitialDelay <= 0 {
		o.RetryInitialDelay = d.RetryInitialDelay
	}
	return o
}

func (o WriteOptions) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = o.RetryInitialDelay
	b.MaxInterval = max(defaultRetryMaxDelay, o.RetryInitialDelay)
	b.Multiplier = defaultRetryBackoffFactor
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(o.MaxAttempts-1)), ctx)
}

// withTimeout runs one store round trip under the store timeout and reports an
// expired deadline as errs.ErrTimeout.
func (o WriteOptions) withTimeout(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	attemptCtx, cancel := context.WithTimeout(ctx, o.StoreTimeout)
	defer cancel()

	err := errs.FromDeadline(operation, fn(attemptCtx))
	if errors.Is(err, errs.ErrTimeout) {
		metrics.StoreTimeouts.WithLabelValues(operation).Inc()
	}
	return err
}

// retryOptimistic runs attempt until it succeeds or fails with anything other
// than a stale version. Each attempt must re-read the order in a fresh unit of
// work. Running out of attempts yields errs.ErrConflict.
func (o WriteOptions) retryOptimistic(
	ctx context.Context,
	operation string,
	orderID kernel.UUID,
	attempt func(ctx context.Context) error,
) error {
	attempts := 0
	err := backoff.Retry(func() error {
		attempts++
		if attempts > 1 {
			metrics.UpdateRetries.WithLabelValues(operation).Inc()
		}

		err := o.withTimeout(ctx, operation, attempt)
		if err == nil || errors.Is(err, errs.ErrVersionIsInvalid) {
			return err
		}
		return backoff.Permanent(err)
	}, o.newBackOff(ctx))

	if errors.Is(err, errs.ErrVersionIsInvalid) {
		metrics.UpdateConflicts.WithLabelValues(operation).Inc()
		return errs.NewConflictErrorWithCause("order", orderID.String(), attempts, err)
	}
	return errs.FromDeadline(operation, err)
}
