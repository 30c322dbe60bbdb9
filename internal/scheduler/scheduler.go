package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
	"github.com/preston-bernstein/tournament-sim/internal/logging"
)

// Runner plays one tournament.
type Runner interface {
	Run(ctx context.Context, seed uint64) (tournament.Result, error)
}

// Scheduler plays a warm-up tournament on start and, when an interval is set, another one
// on every tick. Its Status backs the readiness probe.
type Scheduler struct {
	runner   Runner
	logger   *slog.Logger
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the scheduled runs.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastRunID           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether a run has succeeded and runs are not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Scheduler. interval <= 0 plays only the warm-up run.
func New(runner Runner, logger *slog.Logger, interval time.Duration) *Scheduler {
	return &Scheduler{
		runner:   runner,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins scheduling until the context is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	if s.interval > 0 {
		s.ticker = time.NewTicker(s.interval)
	}
	s.wg.Add(1)
	s.startMu.Unlock()

	go func() {
		defer s.wg.Done()
		logging.Info(s.logger, "scheduler started", slog.Int64(logging.FieldDurationMS, s.interval.Milliseconds()))
		s.runOnce(ctx)
		if s.ticker == nil {
			return
		}

		for {
			select {
			case <-ctx.Done():
				s.stopTicker()
				logging.Info(s.logger, "scheduler stopped")
				return
			case <-s.done:
				s.stopTicker()
				logging.Info(s.logger, "scheduler stopped")
				return
			case <-s.ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

// Stop halts the schedule and waits for an in-flight run to finish, or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.done)
		s.stopTicker()
	})

	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	s.recordAttempt(start)

	result, err := s.runner.Run(ctx, 0)
	if err != nil {
		logging.Error(s.logger, "scheduled run failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		s.recordFailure(err, result.ID, start)
		return
	}
	s.recordSuccess(result.ID, start)
	logging.Info(s.logger, "scheduled run complete",
		slog.String(logging.FieldRunID, result.ID),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
}

func (s *Scheduler) stopTicker() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
}

func (s *Scheduler) recordAttempt(at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.LastAttempt = at
}

func (s *Scheduler) recordSuccess(id string, at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
	s.status.LastRunID = id
	s.status.LastSuccess = at
}

func (s *Scheduler) recordFailure(err error, id string, at time.Time) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.ConsecutiveFailures++
	if err != nil {
		s.status.LastError = err.Error()
	}
	if id != "" {
		s.status.LastRunID = id
	}
	s.status.LastAttempt = at
}

// Status returns a snapshot of the scheduler's recent health.
func (s *Scheduler) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}
