package providers

import "context"

// TeamRecord is a roster entry as supplied by a roster source.
type TeamRecord struct {
	Team        string `json:"Team" yaml:"Team"`
	ISOCode     string `json:"ISOCode" yaml:"ISOCode"`
	FIBARanking int    `json:"FIBARanking" yaml:"FIBARanking"`
}

// ExhibitionRecord is one historical exhibition match. Result is "<teamScore>-<opponentScore>".
type ExhibitionRecord struct {
	Date     string `json:"Date" yaml:"Date"`
	Opponent string `json:"Opponent" yaml:"Opponent"`
	Result   string `json:"Result" yaml:"Result"`
}

// RosterProvider supplies group names and the four-team roster of each group.
// Records are assumed well formed; the engine does not validate them.
type RosterProvider interface {
	GroupNames(ctx context.Context) ([]string, error)
	Roster(ctx context.Context, group string) ([]TeamRecord, error)
}

// ExhibitionFormProvider supplies a team's exhibition history keyed by ISO code.
// An unknown code yields an empty history, not an error.
type ExhibitionFormProvider interface {
	Exhibitions(ctx context.Context, isoCode string) ([]ExhibitionRecord, error)
}

// DataProvider combines both capabilities.
type DataProvider interface {
	RosterProvider
	ExhibitionFormProvider
}
