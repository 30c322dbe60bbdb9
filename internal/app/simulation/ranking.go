package simulation

import (
	"cmp"
	"slices"

	"github.com/preston-bernstein/tournament-sim/internal/domain/teams"
)

// Compare orders teams for ranking: points, then point difference, then points scored, all
// descending. A negative result means a ranks ahead of b.
func Compare(a, b *teams.Team) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.PointDifference, a.PointDifference); c != 0 {
		return c
	}
	return cmp.Compare(b.PointsScored, a.PointsScored)
}

// Rank returns a ranked copy of items with missing teams dropped. Teams equal on all keys
// keep their input order.
func Rank(items []*teams.Team) []*teams.Team {
	ranked := slices.DeleteFunc(slices.Clone(items), func(t *teams.Team) bool { return t == nil })
	slices.SortStableFunc(ranked, Compare)
	return ranked
}
