package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
)

// DefaultMemoryRetention is the number of runs a MemoryStore keeps unless told otherwise.
const DefaultMemoryRetention = 500

// MemoryStore keeps the most recent finished tournament runs in memory, in insertion order.
type MemoryStore struct {
	mu        sync.RWMutex
	results   map[string]tournament.Result
	order     []string
	retention int
}

// NewMemoryStore constructs an empty MemoryStore with the default retention.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithRetention(DefaultMemoryRetention)
}

// NewMemoryStoreWithRetention constructs an empty MemoryStore that keeps at most retention
// runs, dropping the oldest first. retention <= 0 uses DefaultMemoryRetention.
func NewMemoryStoreWithRetention(retention int) *MemoryStore {
	if retention <= 0 {
		retention = DefaultMemoryRetention
	}
	return &MemoryStore{
		results:   make(map[string]tournament.Result),
		retention: retention,
	}
}

// Save stores a result, replacing any earlier run with the same ID.
func (s *MemoryStore) Save(ctx context.Context, result tournament.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if result.ID == "" {
		return fmt.Errorf("save result: %w", ErrMissingID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.results[result.ID]; !ok {
		s.order = append(s.order, result.ID)
	}
	s.results[result.ID] = result
	s.pruneOldRuns()
	return nil
}

func (s *MemoryStore) pruneOldRuns() {
	if len(s.order) <= s.retention {
		return
	}
	drop := len(s.order) - s.retention
	for _, id := range s.order[:drop] {
		delete(s.results, id)
	}
	s.order = slices.Clone(s.order[drop:])
}

// Get retrieves a run by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (tournament.Result, error) {
	if err := ctx.Err(); err != nil {
		return tournament.Result{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.results[id]
	if !ok {
		return tournament.Result{}, fmt.Errorf("%w: %s", tournament.ErrNotFound, id)
	}
	return r, nil
}

// List returns run summaries, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]tournament.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]tournament.Summary, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.results[s.order[i]].Summarize())
	}
	return out, nil
}

// Close is a no-op; it lets MemoryStore stand in wherever a closable store is expected.
func (s *MemoryStore) Close() error {
	return nil
}
