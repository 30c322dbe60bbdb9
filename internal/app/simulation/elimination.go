package simulation

import (
	"log/slog"

	"github.com/preston-bernstein/tournament-sim/internal/domain/teams"
	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
	"github.com/preston-bernstein/tournament-sim/internal/logging"
)

// Bracket is a completed knockout phase.
type Bracket struct {
	Rounds []tournament.KnockoutRound
	Gold   *teams.Team
	Silver *teams.Team
	Bronze *teams.Team
}

// Medals returns the serialized podium.
func (b Bracket) Medals() tournament.Medals {
	if b.Gold == nil || b.Silver == nil || b.Bronze == nil {
		return tournament.Medals{}
	}
	return tournament.Medals{
		Determined: true,
		Gold:       b.Gold.Name,
		Silver:     b.Silver.Name,
		Bronze:     b.Bronze.Name,
	}
}

type roundResult struct {
	record  tournament.KnockoutRound
	winners []*teams.Team
	losers  []*teams.Team
}

// Eliminator runs the knockout: quarterfinals, semifinals, third place match, final.
type Eliminator struct {
	sim    *MatchSimulator
	logger *slog.Logger
}

// NewEliminator creates an eliminator playing matches with sim.
func NewEliminator(sim *MatchSimulator, logger *slog.Logger) *Eliminator {
	return &Eliminator{sim: sim, logger: logger}
}

// Run plays the bracket from the quarterfinal pairings. If any stage is short of
// participants it stops and returns an *InsufficientAdvancersError with no bracket.
func (e *Eliminator) Run(quarterFinals []tournament.Pairing) (Bracket, error) {
	var (
		bracket  Bracket
		pairings = quarterFinals
		semiLoss []*teams.Team
	)

	for stage := tournament.StageQuarterFinal; stage != tournament.StageDone; {
		switch stage {
		case tournament.StageQuarterFinal:
			res := e.play(stage, pairings)
			bracket.Rounds = append(bracket.Rounds, res.record)
			if len(res.winners) < 4 {
				return Bracket{}, &InsufficientAdvancersError{Stage: tournament.StageSemiFinal, Want: 4, Got: len(res.winners)}
			}
			pairings = []tournament.Pairing{
				{First: res.winners[0], Second: res.winners[1]},
				{First: res.winners[2], Second: res.winners[3]},
			}
			stage = tournament.StageSemiFinal

		case tournament.StageSemiFinal:
			res := e.play(stage, pairings)
			bracket.Rounds = append(bracket.Rounds, res.record)
			if len(res.winners) < 2 {
				return Bracket{}, &InsufficientAdvancersError{Stage: tournament.StageFinal, Want: 2, Got: len(res.winners)}
			}
			semiLoss = res.losers
			pairings = []tournament.Pairing{{First: res.winners[0], Second: res.winners[1]}}
			stage = tournament.StageThirdPlace

		case tournament.StageThirdPlace:
			if len(semiLoss) < 2 {
				return Bracket{}, &InsufficientAdvancersError{Stage: stage, Want: 2, Got: len(semiLoss)}
			}
			res := e.play(stage, []tournament.Pairing{{First: semiLoss[0], Second: semiLoss[1]}})
			bracket.Rounds = append(bracket.Rounds, res.record)
			if len(res.winners) < 1 {
				return Bracket{}, &InsufficientAdvancersError{Stage: stage, Want: 1, Got: 0}
			}
			bracket.Bronze = res.winners[0]
			stage = tournament.StageFinal

		case tournament.StageFinal:
			res := e.play(stage, pairings)
			bracket.Rounds = append(bracket.Rounds, res.record)
			if len(res.winners) < 1 {
				return Bracket{}, &InsufficientAdvancersError{Stage: stage, Want: 1, Got: 0}
			}
			bracket.Gold = res.winners[0]
			bracket.Silver = res.losers[0]
			stage = tournament.StageDone
		}
	}

	logging.Info(e.logger, "knockout complete",
		slog.String("gold", bracket.Gold.Name),
		slog.String("silver", bracket.Silver.Name),
		slog.String("bronze", bracket.Bronze.Name),
	)
	return bracket, nil
}

// play simulates every pairing of a stage. Pairings with a missing team are skipped.
func (e *Eliminator) play(stage tournament.Stage, pairings []tournament.Pairing) roundResult {
	sim := e.sim.ForStage(stage)
	res := roundResult{record: tournament.KnockoutRound{Stage: stage}}
	for _, p := range pairings {
		outcome, err := sim.Simulate(p.First, p.Second)
		if err != nil {
			logging.Warn(e.logger, "knockout match skipped", slog.String(logging.FieldStage, string(stage)), "error", err)
			continue
		}
		res.record.Matches = append(res.record.Matches, outcome.Record())
		res.winners = append(res.winners, outcome.Winner)
		res.losers = append(res.losers, outcome.Loser)
	}
	return res
}
