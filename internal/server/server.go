package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/tournament-sim/internal/app/tournaments"
	"github.com/preston-bernstein/tournament-sim/internal/config"
	httpserver "github.com/preston-bernstein/tournament-sim/internal/http"
	"github.com/preston-bernstein/tournament-sim/internal/http/handlers"
	"github.com/preston-bernstein/tournament-sim/internal/logging"
	"github.com/preston-bernstein/tournament-sim/internal/metrics"
	"github.com/preston-bernstein/tournament-sim/internal/providers"
	"github.com/preston-bernstein/tournament-sim/internal/scheduler"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         resultStore
	service       *tournaments.Service
	httpServer    httpServer
	metricsServer httpServer
	scheduler     Scheduler
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured roster source, result store and scheduler.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithProvider(cfg, logger, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider) (*Server, error) {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}

	results, err := buildStore(context.Background(), cfg, logger)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(context.Background())
		}
		return nil, fmt.Errorf("result store: %w", err)
	}

	snaps := buildSnapshots(cfg, logger)
	svc := tournaments.NewService(provider, results, tournaments.Config{
		DefaultSeed:     cfg.Simulation.Seed,
		MaxDrawAttempts: cfg.Simulation.MaxDrawAttempts,
	}, logger, recorder, tournaments.WithSnapshots(snaps.writer, snaps.reader))
	sched := scheduler.New(svc, logger, cfg.Simulation.ScheduleInterval)
	httpSrv := buildHTTPServer(cfg, svc, logger, recorder, sched)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         results,
		service:       svc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		scheduler:     sched,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, results resultStore, httpSrv httpServer, sched Scheduler) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		store:      results,
		httpServer: httpSrv,
		scheduler:  sched,
	}
}

func buildHTTPServer(cfg config.Config, svc handlers.TournamentService, logger *slog.Logger, recorder *metrics.Recorder, sched Scheduler) httpServer {
	var statusFn func() scheduler.Status
	if sched != nil {
		statusFn = sched.Status
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	handler := handlers.NewHandler(svc, logger, statusFn)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpserver.NewRouter(handler, logger, recorder),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the scheduler and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.scheduler.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.scheduler.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop scheduler", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			logging.Warn(s.logger, "result store close failed", "error", err)
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Status reports the scheduler status.
func (s *Server) Status() scheduler.Status {
	return s.scheduler.Status()
}
