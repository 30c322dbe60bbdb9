package fixture

import (
	"context"
	"fmt"
	"sort"

	"github.com/preston-bernstein/tournament-sim/internal/providers"
)

// Provider serves a static roster and exhibition history useful for local runs and tests.
type Provider struct {
	groups      map[string][]providers.TeamRecord
	exhibitions map[string][]providers.ExhibitionRecord
}

// New creates a fixture provider seeded with the Paris 2024 men's basketball groups.
func New() *Provider {
	return NewWith(defaultGroups(), defaultExhibitions())
}

// NewWith creates a fixture provider over caller-supplied data.
func NewWith(groups map[string][]providers.TeamRecord, exhibitions map[string][]providers.ExhibitionRecord) *Provider {
	if exhibitions == nil {
		exhibitions = map[string][]providers.ExhibitionRecord{}
	}
	return &Provider{groups: groups, exhibitions: exhibitions}
}

// GroupNames returns group names in lexical order.
func (p *Provider) GroupNames(ctx context.Context) ([]string, error) {
	_ = ctx
	names := make([]string, 0, len(p.groups))
	for name := range p.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Roster returns a copy of the group's roster in listed order.
func (p *Provider) Roster(ctx context.Context, group string) ([]providers.TeamRecord, error) {
	_ = ctx
	roster, ok := p.groups[group]
	if !ok {
		return nil, fmt.Errorf("%w: %q", providers.ErrGroupNotFound, group)
	}
	return append([]providers.TeamRecord(nil), roster...), nil
}

// Exhibitions returns a copy of the team's exhibition history; unknown codes yield none.
func (p *Provider) Exhibitions(ctx context.Context, isoCode string) ([]providers.ExhibitionRecord, error) {
	_ = ctx
	return append([]providers.ExhibitionRecord(nil), p.exhibitions[isoCode]...), nil
}

func defaultGroups() map[string][]providers.TeamRecord {
	return map[string][]providers.TeamRecord{
		"A": {
			{Team: "Canada", ISOCode: "CAN", FIBARanking: 7},
			{Team: "Australia", ISOCode: "AUS", FIBARanking: 5},
			{Team: "Greece", ISOCode: "GRE", FIBARanking: 14},
			{Team: "Spain", ISOCode: "ESP", FIBARanking: 2},
		},
		"B": {
			{Team: "Germany", ISOCode: "GER", FIBARanking: 3},
			{Team: "France", ISOCode: "FRA", FIBARanking: 9},
			{Team: "Brazil", ISOCode: "BRA", FIBARanking: 12},
			{Team: "Japan", ISOCode: "JPN", FIBARanking: 26},
		},
		"C": {
			{Team: "United States", ISOCode: "USA", FIBARanking: 1},
			{Team: "Serbia", ISOCode: "SRB", FIBARanking: 4},
			{Team: "South Sudan", ISOCode: "SSD", FIBARanking: 34},
			{Team: "Puerto Rico", ISOCode: "PRI", FIBARanking: 16},
		},
	}
}

func defaultExhibitions() map[string][]providers.ExhibitionRecord {
	return map[string][]providers.ExhibitionRecord{
		"CAN": {
			{Date: "06/07/24", Opponent: "FRA", Result: "85-79"},
			{Date: "08/07/24", Opponent: "ESP", Result: "88-85"},
		},
		"AUS": {
			{Date: "05/07/24", Opponent: "USA", Result: "92-98"},
			{Date: "10/07/24", Opponent: "SRB", Result: "76-68"},
		},
		"GRE": {
			{Date: "07/07/24", Opponent: "PRI", Result: "80-70"},
			{Date: "11/07/24", Opponent: "ESP", Result: "70-82"},
		},
		"ESP": {
			{Date: "08/07/24", Opponent: "CAN", Result: "85-88"},
			{Date: "11/07/24", Opponent: "GRE", Result: "82-70"},
		},
		"GER": {
			{Date: "06/07/24", Opponent: "JPN", Result: "104-83"},
			{Date: "12/07/24", Opponent: "USA", Result: "88-92"},
		},
		"FRA": {
			{Date: "06/07/24", Opponent: "CAN", Result: "79-85"},
			{Date: "13/07/24", Opponent: "SRB", Result: "67-79"},
		},
		"BRA": {
			{Date: "09/07/24", Opponent: "PRI", Result: "81-70"},
		},
		"JPN": {
			{Date: "06/07/24", Opponent: "GER", Result: "83-104"},
			{Date: "10/07/24", Opponent: "SSD", Result: "91-84"},
		},
		"USA": {
			{Date: "05/07/24", Opponent: "AUS", Result: "98-92"},
			{Date: "12/07/24", Opponent: "GER", Result: "92-88"},
		},
		"SRB": {
			{Date: "10/07/24", Opponent: "AUS", Result: "68-76"},
			{Date: "13/07/24", Opponent: "FRA", Result: "79-67"},
		},
		"SSD": {
			{Date: "10/07/24", Opponent: "JPN", Result: "84-91"},
		},
		"PRI": {
			{Date: "07/07/24", Opponent: "GRE", Result: "70-80"},
			{Date: "09/07/24", Opponent: "BRA", Result: "70-81"},
		},
	}
}
