package tournament

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/tournament-sim/internal/domain/teams"
)

// Stage names a phase of the tournament.
type Stage string

const (
	StageGroup        Stage = "GROUP"
	StageQuarterFinal Stage = "QUARTER_FINAL"
	StageSemiFinal    Stage = "SEMI_FINAL"
	StageThirdPlace   Stage = "THIRD_PLACE"
	StageFinal        Stage = "FINAL"
	StageDone         Stage = "DONE"
)

// Outcome is the transient result of one simulated match.
type Outcome struct {
	Winner      *teams.Team
	Loser       *teams.Team
	WinnerScore int
	LoserScore  int
}

// Label formats the outcome as "<winner> <score> - <score> <loser>".
func (o Outcome) Label() string {
	return fmt.Sprintf("%s %d - %d %s", nameOf(o.Winner), o.WinnerScore, o.LoserScore, nameOf(o.Loser))
}

// Record converts the outcome into its serialized form.
func (o Outcome) Record() MatchRecord {
	return MatchRecord{
		Winner:      nameOf(o.Winner),
		Loser:       nameOf(o.Loser),
		WinnerScore: o.WinnerScore,
		LoserScore:  o.LoserScore,
		Label:       o.Label(),
	}
}

// MatchRecord is the serialized shape of an Outcome.
type MatchRecord struct {
	Winner      string `json:"winner"`
	Loser       string `json:"loser"`
	WinnerScore int    `json:"winnerScore"`
	LoserScore  int    `json:"loserScore"`
	Label       string `json:"label"`
}

// Pairing is an ordered pair of teams scheduled to meet.
type Pairing struct {
	First  *teams.Team
	Second *teams.Team
}

// Record converts the pairing into its serialized form.
func (p Pairing) Record() PairingRecord {
	rec := PairingRecord{First: nameOf(p.First), Second: nameOf(p.Second)}
	if p.First != nil {
		rec.FirstGroup = p.First.Group
	}
	if p.Second != nil {
		rec.SecondGroup = p.Second.Group
	}
	return rec
}

// PairingRecord is the serialized shape of a Pairing.
type PairingRecord struct {
	First       string `json:"first"`
	FirstGroup  string `json:"firstGroup"`
	Second      string `json:"second"`
	SecondGroup string `json:"secondGroup"`
}

// GroupRound holds the matches of one round-robin round.
type GroupRound struct {
	Round   int           `json:"round"`
	Matches []MatchRecord `json:"matches"`
}

// GroupResult is the complete group-stage record for a single group.
type GroupResult struct {
	Name     string           `json:"name"`
	Rounds   []GroupRound     `json:"rounds"`
	Rankings []teams.Standing `json:"rankings"`
}

// Tiers holds the placement tiers: all group winners, all runners-up and all third places,
// each ranked independently.
type Tiers struct {
	First  []teams.Standing `json:"first"`
	Second []teams.Standing `json:"second"`
	Third  []teams.Standing `json:"third"`
}

// KnockoutRound holds the matches of one elimination stage.
type KnockoutRound struct {
	Stage   Stage         `json:"stage"`
	Matches []MatchRecord `json:"matches"`
}

// Medals reports the podium. Determined is false when a stage failed.
type Medals struct {
	Determined bool   `json:"determined"`
	Gold       string `json:"gold,omitempty"`
	Silver     string `json:"silver,omitempty"`
	Bronze     string `json:"bronze,omitempty"`
}

// Result is everything one tournament run produced.
type Result struct {
	ID            string           `json:"id"`
	Seed          uint64           `json:"seed"`
	CreatedAt     time.Time        `json:"createdAt"`
	Groups        []GroupResult    `json:"groups"`
	Tiers         Tiers            `json:"tiers"`
	Eliminated    []teams.Standing `json:"eliminated"`
	Unused        []teams.Standing `json:"unused"`
	DrawAttempts  int              `json:"drawAttempts"`
	QuarterFinals []PairingRecord  `json:"quarterFinals"`
	Knockout      []KnockoutRound  `json:"knockout"`
	Medals        Medals           `json:"medals"`
	Error         string           `json:"error,omitempty"`
}

// Summary is the short listing shape of a Result.
type Summary struct {
	ID        string    `json:"id"`
	Seed      uint64    `json:"seed"`
	CreatedAt time.Time `json:"createdAt"`
	Medals    Medals    `json:"medals"`
}

// Summarize reduces a Result to its listing shape.
func (r Result) Summarize() Summary {
	return Summary{ID: r.ID, Seed: r.Seed, CreatedAt: r.CreatedAt, Medals: r.Medals}
}

func nameOf(t *teams.Team) string {
	if t == nil {
		return ""
	}
	return t.Name
}
