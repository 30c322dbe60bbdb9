package simulation

import (
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/tournament-sim/internal/domain/teams"
	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
	"github.com/preston-bernstein/tournament-sim/internal/logging"
)

// GroupSize is the only group size the round-robin schedule supports.
const GroupSize = 4

// roundRobinSchedule lists roster indices per round; every pair meets once and no team plays
// twice in a round.
var roundRobinSchedule = [3][2][2]int{
	{{0, 1}, {2, 3}},
	{{0, 2}, {1, 3}},
	{{0, 3}, {1, 2}},
}

const invalidMatchLabel = "Invalid match"

// Group is a group-stage group. It references its teams but does not own them.
type Group struct {
	Name  string
	Teams []*teams.Team
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{Name: name}
}

// AddTeam appends a team and assigns it to the group.
func (g *Group) AddTeam(t *teams.Team) {
	t.Group = g.Name
	g.Teams = append(g.Teams, t)
}

// Fixture returns the round-robin pairings, one slice per round, in roster order.
func (g *Group) Fixture() ([][]tournament.Pairing, error) {
	if len(g.Teams) != GroupSize {
		return nil, fmt.Errorf("group %s has %d teams: %w", g.Name, len(g.Teams), ErrInvalidGroupSize)
	}
	rounds := make([][]tournament.Pairing, 0, len(roundRobinSchedule))
	for _, round := range roundRobinSchedule {
		pairings := make([]tournament.Pairing, 0, len(round))
		for _, pair := range round {
			pairings = append(pairings, tournament.Pairing{First: g.Teams[pair[0]], Second: g.Teams[pair[1]]})
		}
		rounds = append(rounds, pairings)
	}
	return rounds, nil
}

// Validate checks the group holds exactly GroupSize teams and none of them is missing.
func (g *Group) Validate() error {
	if len(g.Teams) != GroupSize {
		return fmt.Errorf("group %s has %d teams: %w", g.Name, len(g.Teams), ErrInvalidGroupSize)
	}
	for i, t := range g.Teams {
		if t == nil {
			return fmt.Errorf("group %s slot %d: %w", g.Name, i+1, ErrInvalidParticipant)
		}
	}
	return nil
}

// PlayRoundRobin simulates the full fixture. A pairing with a missing team is skipped and
// recorded as an invalid match.
func (g *Group) PlayRoundRobin(sim *MatchSimulator, logger *slog.Logger) ([]tournament.GroupRound, error) {
	fixture, err := g.Fixture()
	if err != nil {
		return nil, err
	}

	rounds := make([]tournament.GroupRound, 0, len(fixture))
	for i, pairings := range fixture {
		round := tournament.GroupRound{Round: i + 1}
		for _, p := range pairings {
			outcome, err := sim.Simulate(p.First, p.Second)
			if err != nil {
				logging.Warn(logger, "group match skipped", slog.String(logging.FieldGroup, g.Name), "error", err)
				round.Matches = append(round.Matches, tournament.MatchRecord{Label: invalidMatchLabel})
				continue
			}
			round.Matches = append(round.Matches, outcome.Record())
		}
		rounds = append(rounds, round)
	}
	return rounds, nil
}

// Rankings returns the group's teams ranked; the roster order is left untouched.
func (g *Group) Rankings() []*teams.Team {
	return Rank(g.Teams)
}

// Top returns the first n ranked teams, or all of them if the group is smaller.
func (g *Group) Top(n int) []*teams.Team {
	ranked := g.Rankings()
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// Info renders the group roster listing.
func (g *Group) Info() string {
	out := fmt.Sprintf("Group %s teams:", g.Name)
	for _, t := range g.Teams {
		out += "\n" + t.Info()
	}
	return out
}
