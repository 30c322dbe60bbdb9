package simulation

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/tournament-sim/internal/domain/teams"
	"github.com/preston-bernstein/tournament-sim/internal/providers"
)

// LoadGroups builds groups with fresh teams from a roster source, in the source's group order.
func LoadGroups(ctx context.Context, roster providers.RosterProvider) ([]*Group, error) {
	names, err := roster.GroupNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("load group names: %w", err)
	}

	groups := make([]*Group, 0, len(names))
	for _, name := range names {
		records, err := roster.Roster(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("load roster for group %s: %w", name, err)
		}
		g := NewGroup(name)
		for _, rec := range records {
			g.AddTeam(teams.New(rec.Team, rec.ISOCode, rec.FIBARanking))
		}
		groups = append(groups, g)
	}
	return groups, nil
}
