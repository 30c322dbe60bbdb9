package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/preston-bernstein/tournament-sim/internal/domain/teams"
	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
)

var stageTitles = map[tournament.Stage]string{
	tournament.StageQuarterFinal: "Quarterfinals",
	tournament.StageSemiFinal:    "Semifinals",
	tournament.StageThirdPlace:   "Third place match",
	tournament.StageFinal:        "Final",
}

// Render writes the text report of a run to w.
func Render(w io.Writer, result tournament.Result) error {
	_, err := io.WriteString(w, Text(result))
	return err
}

// Text renders the full run: group rounds and rankings, placement tiers, the draw, the
// knockout bracket and the medals.
func Text(result tournament.Result) string {
	var b strings.Builder

	if result.ID != "" {
		fmt.Fprintf(&b, "Tournament %s (seed %d)\n", result.ID, result.Seed)
	} else {
		fmt.Fprintf(&b, "Tournament (seed %d)\n", result.Seed)
	}

	for _, g := range result.Groups {
		writeGroup(&b, g)
	}

	if len(result.Groups) > 0 {
		writeTier(&b, "First-place teams", 1, result.Tiers.First)
		writeTier(&b, "Second-place teams", 1+len(result.Tiers.First), result.Tiers.Second)
		writeTier(&b, "Third-place teams", 1+len(result.Tiers.First)+len(result.Tiers.Second), result.Tiers.Third)
		writeNames(&b, "Eliminated in the group stage", result.Eliminated)
		writeNames(&b, "Did not enter the draw", result.Unused)
	}

	if len(result.QuarterFinals) > 0 {
		fmt.Fprintf(&b, "\nDraw (%d %s):\n", result.DrawAttempts, plural(result.DrawAttempts, "attempt", "attempts"))
		for _, p := range result.QuarterFinals {
			fmt.Fprintf(&b, "%s vs %s\n", p.First, p.Second)
		}
	}

	if len(result.Knockout) > 0 {
		b.WriteString("\nKnockout bracket:\n")
		for _, round := range result.Knockout {
			title, ok := stageTitles[round.Stage]
			if !ok {
				title = string(round.Stage)
			}
			fmt.Fprintf(&b, "\n%s:\n", title)
			for _, m := range round.Matches {
				b.WriteString(m.Label + "\n")
			}
		}
	}

	writeMedals(&b, result)
	return b.String()
}

func writeGroup(b *strings.Builder, g tournament.GroupResult) {
	fmt.Fprintf(b, "\nGroup %s results:\n", g.Name)
	for _, round := range g.Rounds {
		fmt.Fprintf(b, "\nRound %d:\n", round.Round)
		for _, m := range round.Matches {
			b.WriteString(m.Label + "\n")
		}
	}
	fmt.Fprintf(b, "\nFinal ranking of group %s:\n", g.Name)
	for i, s := range g.Rankings {
		fmt.Fprintf(b, "%d. %s - Points: %d, Wins: %d, Point Difference: %d\n", i+1, s.Name, s.Points, s.Wins, s.PointDifference)
	}
}

// writeTier numbers a tier with absolute seed positions starting at first.
func writeTier(b *strings.Builder, title string, first int, tier []teams.Standing) {
	if len(tier) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s (%d-%d):\n", title, first, first+len(tier)-1)
	for i, s := range tier {
		fmt.Fprintf(b, "%d. %s - Points: %d, Point Difference: %d, Points Scored: %d\n", first+i, s.Name, s.Points, s.PointDifference, s.PointsScored)
	}
}

func writeNames(b *strings.Builder, title string, items []teams.Standing) {
	if len(items) == 0 {
		return
	}
	names := make([]string, 0, len(items))
	for _, s := range items {
		names = append(names, s.Name)
	}
	fmt.Fprintf(b, "\n%s: %s\n", title, strings.Join(names, ", "))
}

func writeMedals(b *strings.Builder, result tournament.Result) {
	b.WriteString("\nMedals:\n")
	if !result.Medals.Determined {
		b.WriteString("undetermined\n")
		if result.Error != "" {
			fmt.Fprintf(b, "Error: %s\n", result.Error)
		}
		return
	}
	fmt.Fprintf(b, "Gold: %s\nSilver: %s\nBronze: %s\n", result.Medals.Gold, result.Medals.Silver, result.Medals.Bronze)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
