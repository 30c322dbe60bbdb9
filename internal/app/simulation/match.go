package simulation

import (
	"github.com/preston-bernstein/tournament-sim/internal/domain/teams"
	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
	"github.com/preston-bernstein/tournament-sim/internal/metrics"
)

const (
	winnerScoreMin = 80
	loserScoreMin  = 60
	scoreSpread    = 20
)

// MatchSimulator plays single matches. The winner is picked by the probability model; the
// scores are drawn independently of it.
type MatchSimulator struct {
	rng     Source
	model   ProbabilityModel
	metrics *metrics.Recorder
	stage   tournament.Stage
}

// NewMatchSimulator builds a simulator for the given stage.
func NewMatchSimulator(rng Source, model ProbabilityModel, recorder *metrics.Recorder, stage tournament.Stage) *MatchSimulator {
	return &MatchSimulator{rng: rng, model: model, metrics: recorder, stage: stage}
}

// ForStage returns a simulator sharing randomness and model but counting under another stage.
func (m *MatchSimulator) ForStage(stage tournament.Stage) *MatchSimulator {
	cp := *m
	cp.stage = stage
	return &cp
}

// Stage reports the stage the simulator counts matches under.
func (m *MatchSimulator) Stage() tournament.Stage {
	return m.stage
}

// Simulate plays a against b and updates both teams' stats.
// Nil participants fail with ErrInvalidParticipant and nothing is mutated.
func (m *MatchSimulator) Simulate(a, b *teams.Team) (tournament.Outcome, error) {
	if a == nil || b == nil {
		return tournament.Outcome{}, ErrInvalidParticipant
	}

	winner, loser := b, a
	if m.rng.Float64() < m.model.WinProbability(a, b) {
		winner, loser = a, b
	}

	winnerScore := winnerScoreMin + m.rng.IntN(scoreSpread)
	loserScore := loserScoreMin + m.rng.IntN(scoreSpread)

	winner.UpdateStats(winnerScore, loserScore, true, false)
	loser.UpdateStats(loserScore, winnerScore, false, false)
	m.metrics.RecordMatch(string(m.stage))

	return tournament.Outcome{
		Winner:      winner,
		Loser:       loser,
		WinnerScore: winnerScore,
		LoserScore:  loserScore,
	}, nil
}
