package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/tournament-sim/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFactory func() backoff.BackOff

// retryingProvider wraps a DataProvider with exponential backoff and per-attempt metrics.
type retryingProvider struct {
	inner       DataProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	newBackoff  backoffFactory
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
// ErrGroupNotFound is never retried.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		newBackoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *retryingProvider) GroupNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.do(ctx, "group names", func() error {
		var err error
		names, err = r.inner.GroupNames(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *retryingProvider) Roster(ctx context.Context, group string) ([]TeamRecord, error) {
	var roster []TeamRecord
	err := r.do(ctx, "roster", func() error {
		var err error
		roster, err = r.inner.Roster(ctx, group)
		return err
	})
	if err != nil {
		return nil, err
	}
	return roster, nil
}

func (r *retryingProvider) Exhibitions(ctx context.Context, isoCode string) ([]ExhibitionRecord, error) {
	var records []ExhibitionRecord
	err := r.do(ctx, "exhibitions", func() error {
		var err error
		records, err = r.inner.Exhibitions(ctx, isoCode)
		return err
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *retryingProvider) do(ctx context.Context, op string, fn func() error) error {
	if r == nil || r.inner == nil {
		return ErrProviderUnavailable
	}

	attempt := 0
	operation := func() error {
		attempt++
		start := time.Now()
		err := fn()
		r.metrics.RecordProviderAttempt(r.name, time.Since(start), err)
		if errors.Is(err, ErrGroupNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch retry",
			"op", op, "attempt", attempt, "max_attempts", r.maxAttempts, "delay_ms", delay.Milliseconds(), "err", err)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackoff(), uint64(r.maxAttempts-1)), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch failed", "op", op, "attempts", attempt, "err", err)
		return err
	}
	return nil
}
