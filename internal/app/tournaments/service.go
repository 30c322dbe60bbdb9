package tournaments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/tournament-sim/internal/app/simulation"
	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
	"github.com/preston-bernstein/tournament-sim/internal/logging"
	"github.com/preston-bernstein/tournament-sim/internal/metrics"
	"github.com/preston-bernstein/tournament-sim/internal/providers"
)

// ErrStoreFailed is returned when a finished run could not be persisted.
var ErrStoreFailed = errors.New("store result")

// Store defines the contract for persisting and retrieving finished runs.
type Store interface {
	Save(ctx context.Context, result tournament.Result) error
	Get(ctx context.Context, id string) (tournament.Result, error)
	List(ctx context.Context) ([]tournament.Summary, error)
}

// SnapshotWriter persists a run to disk.
type SnapshotWriter interface {
	WriteRun(result tournament.Result) error
}

// SnapshotReader loads a run persisted by a SnapshotWriter.
type SnapshotReader interface {
	LoadRun(id string) (tournament.Result, error)
}

// Config holds the simulation defaults applied to every run.
type Config struct {
	// DefaultSeed is used when a run asks for seed 0; 0 here means a fresh random seed.
	DefaultSeed     uint64
	MaxDrawAttempts int
}

// Option customizes a Service.
type Option func(*Service)

// WithSnapshots writes every stored run to w and falls back to r for runs the store no
// longer holds. Either may be nil.
func WithSnapshots(w SnapshotWriter, r SnapshotReader) Option {
	return func(s *Service) {
		s.writer = w
		s.reader = r
	}
}

// Service runs tournaments against a data provider and keeps their results.
type Service struct {
	provider providers.DataProvider
	store    Store
	writer   SnapshotWriter
	reader   SnapshotReader
	cfg      Config
	logger   *slog.Logger
	metrics  *metrics.Recorder

	now     func() time.Time
	newID   func() string
	newSeed func() uint64
}

// NewService constructs a Service over the provider and store.
func NewService(provider providers.DataProvider, store Store, cfg Config, logger *slog.Logger, recorder *metrics.Recorder, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		store:    store,
		cfg:      cfg,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
		newID:    uuid.NewString,
		newSeed:  randomSeed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run loads fresh rosters, plays one tournament and stores the result. seed 0 falls back to
// the configured default seed, then to a random one.
//
// A run that fails in the draw or the knockout is still stored and returned alongside the
// error, with undetermined medals. Any other failure returns an empty result.
func (s *Service) Run(ctx context.Context, seed uint64) (tournament.Result, error) {
	start := time.Now()
	if seed == 0 {
		seed = s.cfg.DefaultSeed
	}
	if seed == 0 {
		seed = s.newSeed()
	}
	id := s.newID()

	logger := logging.FromContext(ctx, s.logger)
	if logger != nil {
		logger = logger.With(slog.String(logging.FieldRunID, id), slog.Uint64(logging.FieldSeed, seed))
		ctx = logging.WithLogger(ctx, logger)
	}

	groups, err := simulation.LoadGroups(ctx, s.provider)
	if err != nil {
		s.metrics.RecordTournament(time.Since(start), err)
		logging.Error(logger, "tournament setup failed", err)
		return tournament.Result{}, err
	}

	tour := simulation.New(groups, simulation.Options{
		Seed:            seed,
		MaxDrawAttempts: s.cfg.MaxDrawAttempts,
		Forms:           s.provider,
		Logger:          logger,
		Metrics:         s.metrics,
	})
	result, runErr := tour.Run(ctx)
	s.metrics.RecordTournament(time.Since(start), runErr)
	if runErr != nil && result.Error == "" {
		logging.Error(logger, "tournament aborted", runErr)
		return tournament.Result{}, runErr
	}

	result.ID = id
	result.CreatedAt = s.now().UTC()

	if err := s.store.Save(ctx, result); err != nil {
		return result, errors.Join(runErr, fmt.Errorf("%w: %w", ErrStoreFailed, err))
	}
	if s.writer != nil {
		if err := s.writer.WriteRun(result); err != nil {
			logging.Warn(logger, "snapshot write failed", "error", err)
		}
	}

	if runErr != nil {
		logging.Warn(logger, "tournament finished without medals", "error", runErr,
			slog.Int(logging.FieldDurationMS, int(time.Since(start).Milliseconds())))
		return result, runErr
	}
	logging.Info(logger, "tournament complete",
		slog.String("gold", result.Medals.Gold),
		slog.Int(logging.FieldDurationMS, int(time.Since(start).Milliseconds())),
	)
	return result, nil
}

// Tournaments lists stored runs, newest first.
func (s *Service) Tournaments(ctx context.Context) ([]tournament.Summary, error) {
	return s.store.List(ctx)
}

// TournamentByID returns a stored run, falling back to the snapshot reader when the store
// does not have it.
func (s *Service) TournamentByID(ctx context.Context, id string) (tournament.Result, error) {
	result, err := s.store.Get(ctx, id)
	if err == nil || !errors.Is(err, tournament.ErrNotFound) || s.reader == nil {
		return result, err
	}
	return s.reader.LoadRun(id)
}

func randomSeed() uint64 {
	for {
		if seed := rand.Uint64(); seed != 0 {
			return seed
		}
	}
}
