package simulation

import (
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/tournament-sim/internal/domain/teams"
	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
	"github.com/preston-bernstein/tournament-sim/internal/logging"
	"github.com/preston-bernstein/tournament-sim/internal/metrics"
)

const (
	// DrawSize is the number of seeds that enter the knockout bracket.
	DrawSize = 8
	// DefaultMaxDrawAttempts caps the draw's rejection sampling.
	DefaultMaxDrawAttempts = 100

	potSize = 2
)

type drawStatus int

const (
	drawOK drawStatus = iota
	drawDeadEnd
)

// pots splits the first DrawSize seeds: D = 1-2, E = 3-4, F = 5-6, G = 7-8.
type pots struct {
	d, e, f, g []*teams.Team
}

func newPots(seeds []*teams.Team) pots {
	return pots{
		d: seeds[0:potSize],
		e: seeds[potSize : 2*potSize],
		f: seeds[2*potSize : 3*potSize],
		g: seeds[3*potSize : 4*potSize],
	}
}

// DrawGenerator builds quarterfinal pairings D×G and E×F such that no pairing joins two
// teams from the same group. Dead ends restart the draw from scratch.
type DrawGenerator struct {
	rng         Source
	maxAttempts int
	logger      *slog.Logger
	metrics     *metrics.Recorder
}

// NewDrawGenerator creates a generator. maxAttempts <= 0 uses DefaultMaxDrawAttempts.
func NewDrawGenerator(rng Source, maxAttempts int, logger *slog.Logger, recorder *metrics.Recorder) *DrawGenerator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxDrawAttempts
	}
	return &DrawGenerator{rng: rng, maxAttempts: maxAttempts, logger: logger, metrics: recorder}
}

// Draw pairs the first DrawSize seeds and reports how many attempts it took.
// Seeds beyond DrawSize are ignored.
func (d *DrawGenerator) Draw(seeds []*teams.Team) ([]tournament.Pairing, int, error) {
	if len(seeds) < DrawSize {
		return nil, 0, fmt.Errorf("%w: have %d, need %d", ErrInsufficientSeeds, len(seeds), DrawSize)
	}
	for i, s := range seeds[:DrawSize] {
		if s == nil {
			return nil, 0, fmt.Errorf("seed %d: %w", i+1, ErrInvalidParticipant)
		}
	}
	p := newPots(seeds[:DrawSize])

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		pairings, status := d.attempt(p)
		if status == drawOK {
			d.metrics.RecordDraw(attempt, nil)
			logging.Info(d.logger, "bracket drawn", slog.Int(logging.FieldAttempts, attempt))
			return pairings, attempt, nil
		}
		logging.Debug(d.logger, "draw attempt hit a dead end", slog.Int(logging.FieldAttempts, attempt))
	}

	err := &DrawConstraintError{Attempts: d.maxAttempts}
	d.metrics.RecordDraw(d.maxAttempts, err)
	return nil, d.maxAttempts, err
}

// attempt runs one self-contained draw; nothing carries over between attempts.
func (d *DrawGenerator) attempt(p pots) ([]tournament.Pairing, drawStatus) {
	pairings := make([]tournament.Pairing, 0, DrawSize/2)
	for _, cross := range [][2][]*teams.Team{{p.d, p.g}, {p.e, p.f}} {
		matched, status := d.cross(cross[0], cross[1])
		if status != drawOK {
			return nil, status
		}
		pairings = append(pairings, matched...)
	}
	return pairings, drawOK
}

// cross pairs each team in top, in order, with a random unused team from bottom that is not
// from its group.
func (d *DrawGenerator) cross(top, bottom []*teams.Team) ([]tournament.Pairing, drawStatus) {
	used := make(map[*teams.Team]bool, len(bottom))
	pairings := make([]tournament.Pairing, 0, len(top))
	for _, t := range top {
		candidates := make([]*teams.Team, 0, len(bottom))
		for _, opp := range bottom {
			if !used[opp] && opp.Group != t.Group {
				candidates = append(candidates, opp)
			}
		}
		if len(candidates) == 0 {
			return nil, drawDeadEnd
		}
		pick := candidates[d.rng.IntN(len(candidates))]
		used[pick] = true
		pairings = append(pairings, tournament.Pairing{First: t, Second: pick})
	}
	return pairings, drawOK
}
