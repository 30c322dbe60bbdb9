package teams

import "fmt"

// Team is a tournament participant. Identity fields are fixed at creation; the stat fields
// change only through UpdateStats and ResetStats.
type Team struct {
	Name        string
	ISOCode     string
	FIBARanking int
	// Group is the name of the group the team was drawn into, empty until assigned.
	Group string

	PointsScored    int
	PointsConceded  int
	PointDifference int
	Points          int
	Wins            int
}

// New creates a team with zero stats.
func New(name, isoCode string, fibaRanking int) *Team {
	return &Team{
		Name:        name,
		ISOCode:     isoCode,
		FIBARanking: fibaRanking,
	}
}

// UpdateStats applies a single match result. A forfeit awards no points regardless of
// isWin; otherwise a win is worth 2 points and a loss 1.
func (t *Team) UpdateStats(scored, conceded int, isWin, isForfeit bool) {
	t.PointsScored += scored
	t.PointsConceded += conceded
	t.PointDifference = t.PointsScored - t.PointsConceded

	switch {
	case isForfeit:
	case isWin:
		t.Wins++
		t.Points += 2
	default:
		t.Points++
	}
}

// ResetStats clears accumulated stats and keeps identity and group.
func (t *Team) ResetStats() {
	t.PointsScored = 0
	t.PointsConceded = 0
	t.PointDifference = 0
	t.Points = 0
	t.Wins = 0
}

// Info renders the one-line team summary used in group listings.
func (t *Team) Info() string {
	return fmt.Sprintf("Team: %s, ISO Code: %s, FIBA Ranking: %d, Points: %d, Wins: %d, Points Scored: %d, Points Conceded: %d, Point Difference: %d",
		t.Name, t.ISOCode, t.FIBARanking, t.Points, t.Wins, t.PointsScored, t.PointsConceded, t.PointDifference)
}

// Summary returns an immutable copy of the team for reporting.
func (t *Team) Summary() Standing {
	if t == nil {
		return Standing{}
	}
	return Standing{
		Name:            t.Name,
		ISOCode:         t.ISOCode,
		FIBARanking:     t.FIBARanking,
		Group:           t.Group,
		Points:          t.Points,
		Wins:            t.Wins,
		PointsScored:    t.PointsScored,
		PointsConceded:  t.PointsConceded,
		PointDifference: t.PointDifference,
	}
}
