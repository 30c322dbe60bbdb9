package simulation

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/tournament-sim/internal/domain/teams"
	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
	"github.com/preston-bernstein/tournament-sim/internal/logging"
	"github.com/preston-bernstein/tournament-sim/internal/metrics"
	"github.com/preston-bernstein/tournament-sim/internal/providers"
)

// Options configures a Tournament.
type Options struct {
	Seed            uint64
	MaxDrawAttempts int
	// Forms feeds the knockout probability model; nil means every team has form 0.
	Forms   providers.ExhibitionFormProvider
	Logger  *slog.Logger
	Metrics *metrics.Recorder
	// Source overrides the seeded random source (tests).
	Source Source
}

// Tournament is the state of one run: its groups, its randomness and its models.
// It is not safe for concurrent use.
type Tournament struct {
	groups []*Group
	seed   uint64
	rng    Source
	opts   Options
}

// New builds a tournament over the given groups.
func New(groups []*Group, opts Options) *Tournament {
	rng := opts.Source
	if rng == nil {
		rng = NewSource(opts.Seed)
	}
	return &Tournament{groups: groups, seed: opts.Seed, rng: rng, opts: opts}
}

// Groups exposes the tournament's groups.
func (t *Tournament) Groups() []*Group {
	return t.groups
}

// Reset clears every team's stats so the same roster can be replayed.
func (t *Tournament) Reset() {
	for _, g := range t.groups {
		for _, team := range g.Teams {
			if team != nil {
				team.ResetStats()
			}
		}
	}
}

// Run plays the group stage, the draw and the knockout. On a draw or knockout failure it
// returns the result so far with undetermined medals along with the error.
func (t *Tournament) Run(ctx context.Context) (tournament.Result, error) {
	logger := logging.FromContext(ctx, t.opts.Logger)
	result := tournament.Result{Seed: t.seed}

	for _, g := range t.groups {
		if err := g.Validate(); err != nil {
			return result, err
		}
	}

	groupSim := NewMatchSimulator(t.rng, RankingModel{}, t.opts.Metrics, tournament.StageGroup)
	for _, g := range t.groups {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		rounds, err := g.PlayRoundRobin(groupSim, logger)
		if err != nil {
			return result, err
		}
		result.Groups = append(result.Groups, tournament.GroupResult{
			Name:     g.Name,
			Rounds:   rounds,
			Rankings: teams.Standings(g.Rankings()),
		})
		logging.Info(logger, "group stage complete", slog.String(logging.FieldGroup, g.Name))
	}

	tiers, eliminated := Aggregate(t.groups)
	seeds := tiers.Seeds()
	result.Tiers = tournament.Tiers{
		First:  teams.Standings(tiers.First),
		Second: teams.Standings(tiers.Second),
		Third:  teams.Standings(tiers.Third),
	}
	result.Eliminated = teams.Standings(eliminated)
	if len(seeds) > DrawSize {
		result.Unused = teams.Standings(seeds[DrawSize:])
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	draw := NewDrawGenerator(t.rng, t.opts.MaxDrawAttempts, logger, t.opts.Metrics)
	quarterFinals, attempts, err := draw.Draw(seeds)
	result.DrawAttempts = attempts
	if err != nil {
		result.Error = err.Error()
		return result, err
	}
	for _, p := range quarterFinals {
		result.QuarterFinals = append(result.QuarterFinals, p.Record())
	}

	forms := NewFormModel(t.opts.Forms, logger)
	if err := forms.Load(ctx, seeds[:DrawSize]); err != nil {
		result.Error = err.Error()
		return result, err
	}

	knockoutSim := NewMatchSimulator(t.rng, forms, t.opts.Metrics, tournament.StageQuarterFinal)
	bracket, err := NewEliminator(knockoutSim, logger).Run(quarterFinals)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}
	result.Knockout = bracket.Rounds
	result.Medals = bracket.Medals()
	return result, nil
}
