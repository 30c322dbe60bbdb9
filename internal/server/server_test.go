package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/tournament-sim/internal/config"
	"github.com/preston-bernstein/tournament-sim/internal/http/handlers"
	"github.com/preston-bernstein/tournament-sim/internal/providers/file"
	"github.com/preston-bernstein/tournament-sim/internal/providers/fixture"
	"github.com/preston-bernstein/tournament-sim/internal/store"
	"github.com/preston-bernstein/tournament-sim/internal/teststubs"
	"github.com/preston-bernstein/tournament-sim/internal/testutil"
)

type stubHTTPServer struct {
	addr          string
	handler       http.Handler
	shutdownCalls int
	listenErr     error
	shutdownErr   error
}

func (s *stubHTTPServer) ListenAndServe() error { return s.listenErr }

func (s *stubHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdownCalls++
	return s.shutdownErr
}

func (s *stubHTTPServer) Addr() string          { return s.addr }
func (s *stubHTTPServer) Handler() http.Handler { return s.handler }

type blockingHTTPServer struct {
	shutdownCalls int
	unblock       chan struct{}
}

func (s *blockingHTTPServer) ListenAndServe() error { return nil }

func (s *blockingHTTPServer) Shutdown(ctx context.Context) error {
	s.shutdownCalls++
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.unblock:
		return nil
	}
}

func (s *blockingHTTPServer) Addr() string          { return ":0" }
func (s *blockingHTTPServer) Handler() http.Handler { return http.NewServeMux() }

type closeCountingStore struct {
	*store.MemoryStore
	closes int
	err    error
}

func (c *closeCountingStore) Close() error {
	c.closes++
	return c.err
}

func waitReady(t *testing.T, srv *Server) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if srv.Status().IsReady() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for warm-up run, status %+v", srv.Status())
}

func TestServerServesHealthAndTournaments(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := &teststubs.StubProvider{Notify: make(chan struct{})}
	srv, err := newServerWithProvider(config.Config{}, nil, provider)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	router := srv.Handler()
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/ready", nil), http.StatusServiceUnavailable)

	srv.scheduler.Start(ctx)
	select {
	case <-provider.Notify:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for scheduler to load rosters")
	}
	waitReady(t, srv)

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/health", nil), http.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/ready", nil), http.StatusOK)

	rr := testutil.Serve(router, http.MethodGet, "/tournaments", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var list handlers.ListResponse
	testutil.DecodeJSON(t, rr, &list)
	if len(list.Tournaments) != 1 || list.Tournaments[0].ID != srv.Status().LastRunID {
		t.Fatalf("expected the warm-up run listed, got %+v", list.Tournaments)
	}

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodPost, "/tournaments?seed=5", nil), http.StatusCreated)
	if got := srv.metrics.Simulation().Runs; got != 2 {
		t.Fatalf("expected 2 runs recorded, got %d", got)
	}
}

func TestServerReportsProviderFailureOnReady(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider := &teststubs.StubProvider{Err: errors.New("roster offline"), Notify: make(chan struct{})}
	cfg := config.Config{Roster: config.RosterConfig{RetryAttempts: 1, RetryBackoff: time.Millisecond}}
	srv, err := newServerWithProvider(cfg, nil, provider)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	srv.scheduler.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for srv.Status().ConsecutiveFailures == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if srv.Status().ConsecutiveFailures != 1 {
		t.Fatalf("expected one failed run, got %+v", srv.Status())
	}
	testutil.AssertStatus(t, testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil), http.StatusServiceUnavailable)
	if got := srv.metrics.ProviderErrors("*teststubs.stubprovider"); got == 0 {
		t.Fatalf("expected provider errors recorded under derived name")
	}
}

func TestSelectProvider(t *testing.T) {
	if _, ok := selectProvider(config.Config{}, nil).(*fixture.Provider); !ok {
		t.Fatalf("expected fixture by default")
	}
	if _, ok := selectProvider(config.Config{Roster: config.RosterConfig{Source: "unknown"}}, nil).(*fixture.Provider); !ok {
		t.Fatalf("expected fixture fallback")
	}
	cfg := config.Config{Roster: config.RosterConfig{Source: config.RosterSourceFile, GroupsPath: "g.json"}}
	if _, ok := selectProvider(cfg, nil).(*file.Provider); !ok {
		t.Fatalf("expected file provider")
	}
}

func TestProviderFactoryWrapsWithRetry(t *testing.T) {
	prov := newProviderFactory(nil, nil).build(config.Config{})
	if prov == nil {
		t.Fatalf("expected provider")
	}
	if _, ok := prov.(*fixture.Provider); ok {
		t.Fatalf("expected provider wrapped with retries")
	}
	if _, err := prov.GroupNames(context.Background()); err != nil {
		t.Fatalf("expected fixture groups through wrapper, got %v", err)
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName("File", nil); got != "file" {
		t.Fatalf("expected lower-cased source, got %s", got)
	}
	if got := normalizeProviderName("", fixture.New()); got != "*fixture.provider" {
		t.Fatalf("expected type-derived name, got %s", got)
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("expected generic name, got %s", got)
	}
}

func TestNewConstructsServer(t *testing.T) {
	srv, err := New(config.Config{Port: "0"}, nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
	if _, ok := srv.store.(*store.MemoryStore); !ok {
		t.Fatalf("expected memory store by default, got %T", srv.store)
	}
}

func TestBuildStore(t *testing.T) {
	ctx := context.Background()

	s, err := buildStore(ctx, config.Config{Store: config.StoreConfig{Driver: "bogus"}}, nil)
	if err != nil {
		t.Fatalf("expected fallback, got %v", err)
	}
	if _, ok := s.(*store.MemoryStore); !ok {
		t.Fatalf("expected memory fallback, got %T", s)
	}

	path := filepath.Join(t.TempDir(), "runs.db")
	s, err = buildStore(ctx, config.Config{Store: config.StoreConfig{Driver: config.StoreSQLite, SQLitePath: path}}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*store.SQLiteStore); !ok {
		t.Fatalf("expected sqlite store, got %T", s)
	}

	if _, err := buildStore(ctx, config.Config{Store: config.StoreConfig{Driver: config.StoreSQLite}}, nil); err == nil {
		t.Fatalf("expected error for missing sqlite path")
	}
}

func TestNewFailsWhenStoreCannotOpen(t *testing.T) {
	orig := openSQLite
	defer func() { openSQLite = orig }()
	openSQLite = func(ctx context.Context, path string) (resultStore, error) {
		return nil, errors.New("locked")
	}

	_, err := New(config.Config{Store: config.StoreConfig{Driver: config.StoreSQLite, SQLitePath: "x.db"}}, nil)
	if err == nil {
		t.Fatalf("expected store error")
	}
}

func TestSnapshotsAreWrittenAndServedWhenEnabled(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{Snapshots: config.SnapshotConfig{Enabled: true, Dir: dir, Retention: 5}}

	srv, err := newServerWithProvider(cfg, nil, fixture.New())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	result, err := srv.service.Run(context.Background(), 99)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "runs", result.ID+".json")); err != nil {
		t.Fatalf("expected snapshot on disk: %v", err)
	}

	// A fresh server has an empty memory store and must fall back to the snapshot.
	fresh, err := newServerWithProvider(cfg, nil, fixture.New())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	rr := testutil.Serve(fresh.Handler(), http.MethodGet, "/tournaments/"+result.ID, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestBuildSnapshotsDisabled(t *testing.T) {
	snaps := buildSnapshots(config.Config{}, nil)
	if snaps.writer != nil || snaps.reader != nil {
		t.Fatalf("expected no snapshot components when disabled")
	}
}

func TestGracefulShutdownStopsEverything(t *testing.T) {
	sched := &teststubs.StubScheduler{}
	httpSrv := &stubHTTPServer{}
	results := &closeCountingStore{MemoryStore: store.NewMemoryStore()}

	srv := newServerWithDeps(config.Config{}, nil, results, httpSrv, sched)
	srv.gracefulShutdown()

	if sched.StopCalls.Load() != 1 {
		t.Fatalf("expected scheduler Stop once, got %d", sched.StopCalls.Load())
	}
	if httpSrv.shutdownCalls != 1 {
		t.Fatalf("expected server Shutdown once, got %d", httpSrv.shutdownCalls)
	}
	if results.closes != 1 {
		t.Fatalf("expected store closed once, got %d", results.closes)
	}
}

func TestGracefulShutdownContinuesAfterErrors(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	sched := &teststubs.StubScheduler{StopErr: errors.New("stop failure")}
	httpSrv := &stubHTTPServer{shutdownErr: errors.New("shutdown failure")}
	results := &closeCountingStore{MemoryStore: store.NewMemoryStore(), err: errors.New("close failure")}

	srv := newServerWithDeps(config.Config{}, logger, results, httpSrv, sched)
	srv.gracefulShutdown()

	if httpSrv.shutdownCalls != 1 || results.closes != 1 {
		t.Fatalf("expected shutdown to continue past errors")
	}
	for _, want := range []string{"failed to stop scheduler", "graceful shutdown failed", "result store close failed", "shutdown complete"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("expected log %q, got %s", want, buf.String())
		}
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	sched := &teststubs.StubScheduler{}
	blocking := &blockingHTTPServer{unblock: make(chan struct{})}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, nil, blocking, sched)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.shutdownCalls != 1 {
		t.Fatalf("expected server Shutdown once, got %d", blocking.shutdownCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, nil, &stubHTTPServer{listenErr: errors.New("listen failure")}, &teststubs.StubScheduler{})

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	srv.startServer(func() {
		close(stopCalled)
		wg.Done()
	})

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}
	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := &teststubs.StubScheduler{}
	httpSrv := &stubHTTPServer{listenErr: http.ErrServerClosed}
	srv := newServerWithDeps(config.Config{}, nil, &closeCountingStore{MemoryStore: store.NewMemoryStore()}, httpSrv, sched)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if sched.StartCalls.Load() != 1 || sched.StopCalls.Load() != 1 {
		t.Fatalf("expected scheduler started and stopped once, got %d/%d", sched.StartCalls.Load(), sched.StopCalls.Load())
	}
	if httpSrv.shutdownCalls != 1 {
		t.Fatalf("expected server Shutdown once, got %d", httpSrv.shutdownCalls)
	}
}
