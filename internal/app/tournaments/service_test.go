package tournaments

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/tournament-sim/internal/app/simulation"
	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
	"github.com/preston-bernstein/tournament-sim/internal/metrics"
	"github.com/preston-bernstein/tournament-sim/internal/providers"
	"github.com/preston-bernstein/tournament-sim/internal/providers/fixture"
	"github.com/preston-bernstein/tournament-sim/internal/store"
	"github.com/preston-bernstein/tournament-sim/internal/testutil"
)

type stubWriter struct {
	written []string
	err     error
}

func (w *stubWriter) WriteRun(result tournament.Result) error {
	w.written = append(w.written, result.ID)
	return w.err
}

type stubReader struct {
	results map[string]tournament.Result
	calls   int
}

func (r *stubReader) LoadRun(id string) (tournament.Result, error) {
	r.calls++
	res, ok := r.results[id]
	if !ok {
		return tournament.Result{}, tournament.ErrNotFound
	}
	return res, nil
}

type failingStore struct {
	*store.MemoryStore
	saveErr error
	getErr  error
}

func (f failingStore) Save(ctx context.Context, result tournament.Result) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryStore.Save(ctx, result)
}

func (f failingStore) Get(ctx context.Context, id string) (tournament.Result, error) {
	if f.getErr != nil {
		return tournament.Result{}, f.getErr
	}
	return f.MemoryStore.Get(ctx, id)
}

type brokenProvider struct {
	providers.DataProvider
	err error
}

func (b brokenProvider) GroupNames(ctx context.Context) ([]string, error) {
	return nil, b.err
}

func newTestService(t *testing.T, provider providers.DataProvider, st Store, cfg Config, opts ...Option) (*Service, *metrics.Recorder) {
	t.Helper()
	rec := metrics.NewRecorder()
	logger, _ := testutil.NewBufferLogger()
	svc := NewService(provider, st, cfg, logger, rec, opts...)
	ids := 0
	svc.newID = func() string {
		ids++
		return "run-" + string(rune('0'+ids))
	}
	svc.now = func() time.Time { return time.Date(2024, 8, 10, 20, 0, 0, 0, time.FixedZone("CEST", 2*60*60)) }
	svc.newSeed = func() uint64 { return 777 }
	return svc, rec
}

func TestServiceRunStoresResult(t *testing.T) {
	mem := store.NewMemoryStore()
	writer := &stubWriter{}
	svc, rec := newTestService(t, fixture.New(), mem, Config{}, WithSnapshots(writer, nil))

	result, err := svc.Run(context.Background(), 42)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.ID != "run-1" || result.Seed != 42 || !result.Medals.Determined {
		t.Fatalf("unexpected result header %+v", result.Summarize())
	}
	if result.CreatedAt.Location() != time.UTC || result.CreatedAt.Hour() != 18 {
		t.Fatalf("expected UTC timestamp, got %v", result.CreatedAt)
	}

	stored, err := svc.TournamentByID(context.Background(), "run-1")
	if err != nil || stored.Medals != result.Medals {
		t.Fatalf("expected stored run, got %+v %v", stored.Medals, err)
	}
	if len(writer.written) != 1 || writer.written[0] != "run-1" {
		t.Fatalf("expected snapshot written, got %v", writer.written)
	}
	if sim := rec.Simulation(); sim.Runs != 1 || sim.RunErrors != 0 {
		t.Fatalf("unexpected run metrics %+v", sim)
	}
}

func TestServiceSeedFallbacks(t *testing.T) {
	svc, _ := newTestService(t, fixture.New(), store.NewMemoryStore(), Config{DefaultSeed: 9})
	result, err := svc.Run(context.Background(), 0)
	if err != nil || result.Seed != 9 {
		t.Fatalf("expected configured seed 9, got %d (%v)", result.Seed, err)
	}

	svc, _ = newTestService(t, fixture.New(), store.NewMemoryStore(), Config{})
	result, err = svc.Run(context.Background(), 0)
	if err != nil || result.Seed != 777 {
		t.Fatalf("expected random seed 777, got %d (%v)", result.Seed, err)
	}
}

func TestServiceRunIsReproducibleBySeed(t *testing.T) {
	svc, _ := newTestService(t, fixture.New(), store.NewMemoryStore(), Config{})
	first, err := svc.Run(context.Background(), 1234)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.Run(context.Background(), 1234)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.Medals != second.Medals || first.DrawAttempts != second.DrawAttempts {
		t.Fatalf("expected same outcome for same seed: %+v vs %+v", first.Medals, second.Medals)
	}
	if first.ID == second.ID {
		t.Fatalf("expected distinct run ids")
	}

	list, err := svc.Tournaments(context.Background())
	if err != nil || len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("unexpected listing %+v %v", list, err)
	}
}

func TestServiceStoresFailedDraw(t *testing.T) {
	p := fixture.NewWith(map[string][]providers.TeamRecord{
		"A": {{Team: "A1", ISOCode: "A1", FIBARanking: 1}, {Team: "A2", ISOCode: "A2", FIBARanking: 2}, {Team: "A3", ISOCode: "A3", FIBARanking: 3}, {Team: "A4", ISOCode: "A4", FIBARanking: 4}},
		"B": {{Team: "B1", ISOCode: "B1", FIBARanking: 5}, {Team: "B2", ISOCode: "B2", FIBARanking: 6}, {Team: "B3", ISOCode: "B3", FIBARanking: 7}, {Team: "B4", ISOCode: "B4", FIBARanking: 8}},
	}, nil)
	mem := store.NewMemoryStore()
	svc, rec := newTestService(t, p, mem, Config{})

	result, err := svc.Run(context.Background(), 5)
	if !errors.Is(err, simulation.ErrInsufficientSeeds) {
		t.Fatalf("expected ErrInsufficientSeeds, got %v", err)
	}
	if result.ID == "" || result.Medals.Determined || !strings.Contains(result.Error, "insufficient seeds") {
		t.Fatalf("unexpected partial result %+v", result.Summarize())
	}
	if _, err := mem.Get(context.Background(), result.ID); err != nil {
		t.Fatalf("expected partial run stored, got %v", err)
	}
	if sim := rec.Simulation(); sim.RunErrors != 1 {
		t.Fatalf("expected run error recorded, got %+v", sim)
	}
}

func TestServiceProviderFailure(t *testing.T) {
	boom := errors.New("roster offline")
	mem := store.NewMemoryStore()
	svc, rec := newTestService(t, brokenProvider{err: boom}, mem, Config{})

	result, err := svc.Run(context.Background(), 1)
	if !errors.Is(err, boom) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if result.ID != "" {
		t.Fatalf("expected empty result, got %+v", result.Summarize())
	}
	if list, _ := mem.List(context.Background()); len(list) != 0 {
		t.Fatalf("expected nothing stored")
	}
	if sim := rec.Simulation(); sim.Runs != 1 || sim.RunErrors != 1 {
		t.Fatalf("unexpected metrics %+v", sim)
	}
}

func TestServiceCanceledRunIsNotStored(t *testing.T) {
	mem := store.NewMemoryStore()
	svc, _ := newTestService(t, fixture.New(), mem, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Run(ctx, 3); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if list, _ := mem.List(context.Background()); len(list) != 0 {
		t.Fatalf("expected nothing stored")
	}
}

func TestServiceStoreFailure(t *testing.T) {
	boom := errors.New("disk full")
	writer := &stubWriter{}
	svc, _ := newTestService(t, fixture.New(), failingStore{MemoryStore: store.NewMemoryStore(), saveErr: boom}, Config{}, WithSnapshots(writer, nil))

	result, err := svc.Run(context.Background(), 3)
	if !errors.Is(err, boom) || !errors.Is(err, ErrStoreFailed) {
		t.Fatalf("expected store error, got %v", err)
	}
	if result.ID == "" {
		t.Fatalf("expected result returned with the error")
	}
	if len(writer.written) != 0 {
		t.Fatalf("expected no snapshot for an unsaved run")
	}
}

func TestServiceSnapshotFailureIsNotFatal(t *testing.T) {
	writer := &stubWriter{err: errors.New("read-only")}
	svc, _ := newTestService(t, fixture.New(), store.NewMemoryStore(), Config{}, WithSnapshots(writer, nil))
	if _, err := svc.Run(context.Background(), 3); err != nil {
		t.Fatalf("expected run to succeed, got %v", err)
	}
}

func TestTournamentByIDFallsBackToSnapshots(t *testing.T) {
	reader := &stubReader{results: map[string]tournament.Result{"old": {ID: "old", Seed: 4}}}
	svc, _ := newTestService(t, fixture.New(), store.NewMemoryStore(), Config{}, WithSnapshots(nil, reader))

	got, err := svc.TournamentByID(context.Background(), "old")
	if err != nil || got.Seed != 4 {
		t.Fatalf("expected snapshot fallback, got %+v %v", got, err)
	}
	if _, err := svc.TournamentByID(context.Background(), "never"); !errors.Is(err, tournament.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	boom := errors.New("db down")
	svc, _ = newTestService(t, fixture.New(), failingStore{MemoryStore: store.NewMemoryStore(), getErr: boom}, Config{}, WithSnapshots(nil, reader))
	if _, err := svc.TournamentByID(context.Background(), "old"); !errors.Is(err, boom) {
		t.Fatalf("expected store error to surface, got %v", err)
	}
	if reader.calls != 2 {
		t.Fatalf("expected reader consulted only on not-found, got %d calls", reader.calls)
	}
}

func TestRandomSeedIsNonZero(t *testing.T) {
	for i := 0; i < 100; i++ {
		if randomSeed() == 0 {
			t.Fatalf("expected non-zero seed")
		}
	}
}
