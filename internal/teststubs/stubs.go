package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
	"github.com/preston-bernstein/tournament-sim/internal/providers"
	"github.com/preston-bernstein/tournament-sim/internal/providers/fixture"
	"github.com/preston-bernstein/tournament-sim/internal/scheduler"
)

// StubProvider is a providers.DataProvider backed by the fixture roster. Err, when set, is
// returned from GroupNames. Notify is closed on the first call.
type StubProvider struct {
	Inner  providers.DataProvider
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}

	notifyOnce sync.Once
}

// GroupNames returns the configured error or the inner provider's groups while tracking calls.
func (s *StubProvider) GroupNames(ctx context.Context) ([]string, error) {
	if s.Notify != nil {
		s.notifyOnce.Do(func() { close(s.Notify) })
	}
	s.Calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.inner().GroupNames(ctx)
}

// Roster delegates to the inner provider.
func (s *StubProvider) Roster(ctx context.Context, group string) ([]providers.TeamRecord, error) {
	return s.inner().Roster(ctx, group)
}

// Exhibitions delegates to the inner provider.
func (s *StubProvider) Exhibitions(ctx context.Context, isoCode string) ([]providers.ExhibitionRecord, error) {
	return s.inner().Exhibitions(ctx, isoCode)
}

func (s *StubProvider) inner() providers.DataProvider {
	if s.Inner == nil {
		s.Inner = fixture.New()
	}
	return s.Inner
}

// StubSnapshotWriter records written runs keyed by ID.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written map[string]tournament.Result
	Err     error
}

// WriteRun records the run for verification in tests.
func (w *StubSnapshotWriter) WriteRun(result tournament.Result) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Err != nil {
		return w.Err
	}
	if w.Written == nil {
		w.Written = make(map[string]tournament.Result)
	}
	w.Written[result.ID] = result
	return nil
}

// StubScheduler counts lifecycle calls and reports a fixed status.
type StubScheduler struct {
	StartCalls atomic.Int32
	StopCalls  atomic.Int32
	StopErr    error
	State      scheduler.Status
}

func (s *StubScheduler) Start(ctx context.Context) { s.StartCalls.Add(1) }

func (s *StubScheduler) Stop(ctx context.Context) error {
	s.StopCalls.Add(1)
	return s.StopErr
}

func (s *StubScheduler) Status() scheduler.Status { return s.State }
