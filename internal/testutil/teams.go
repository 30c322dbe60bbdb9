package testutil

import "github.com/preston-bernstein/tournament-sim/internal/domain/teams"

// Team builds a team already assigned to group.
func Team(name string, ranking int, group string) *teams.Team {
	t := teams.New(name, name, ranking)
	t.Group = group
	return t
}

// TeamWithStats builds a team with the given points, scored and conceded totals.
func TeamWithStats(name string, points, scored, conceded int) *teams.Team {
	t := teams.New(name, name, 1)
	t.Points = points
	t.PointsScored = scored
	t.PointsConceded = conceded
	t.PointDifference = scored - conceded
	return t
}

// Seeds builds eight teams ranked 1..8 with groups taken in order from groups.
func Seeds(groups ...string) []*teams.Team {
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	out := make([]*teams.Team, 0, len(names))
	for i, name := range names {
		group := ""
		if i < len(groups) {
			group = groups[i]
		}
		out = append(out, Team(name, i+1, group))
	}
	return out
}
