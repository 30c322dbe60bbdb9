package simulation

import "github.com/preston-bernstein/tournament-sim/internal/domain/teams"

// QualifiersPerGroup is how many teams leave each group for the placement tiers.
const QualifiersPerGroup = 3

// Tiers holds every group's 1st, 2nd and 3rd place finishers, each tier ranked on its own.
type Tiers struct {
	First  []*teams.Team
	Second []*teams.Team
	Third  []*teams.Team
}

// Aggregate ranks each group, splits the top three into tiers and ranks each tier.
// It also returns the teams that finished below the qualifying places.
func Aggregate(groups []*Group) (Tiers, []*teams.Team) {
	var (
		placed     [QualifiersPerGroup][]*teams.Team
		eliminated []*teams.Team
	)
	for _, g := range groups {
		ranked := g.Rankings()
		for i, t := range ranked {
			if i < QualifiersPerGroup {
				placed[i] = append(placed[i], t)
				continue
			}
			eliminated = append(eliminated, t)
		}
	}
	return Tiers{
		First:  Rank(placed[0]),
		Second: Rank(placed[1]),
		Third:  Rank(placed[2]),
	}, eliminated
}

// Seeds returns the combined seed list: tier one, then two, then three.
func (t Tiers) Seeds() []*teams.Team {
	seeds := make([]*teams.Team, 0, len(t.First)+len(t.Second)+len(t.Third))
	seeds = append(seeds, t.First...)
	seeds = append(seeds, t.Second...)
	return append(seeds, t.Third...)
}
