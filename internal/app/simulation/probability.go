package simulation

import (
	"context"
	"log/slog"
	"math"

	"github.com/preston-bernstein/tournament-sim/internal/domain/teams"
	"github.com/preston-bernstein/tournament-sim/internal/providers"
)

const (
	rankingScale = 10.0
	formWeight   = 0.01
)

// ProbabilityAWins returns P(A beats B). Lower rankings are stronger; form is the signed sum
// of exhibition score differentials. The result is clamped to [0, 1].
func ProbabilityAWins(rankA, rankB, formA, formB int) float64 {
	base := 1 / (1 + math.Exp(-(float64(rankB)-float64(rankA))/rankingScale))
	adjusted := base + (float64(formA)-float64(formB))*formWeight
	return math.Max(0, math.Min(1, adjusted))
}

// ProbabilityModel yields the chance that a beats b.
type ProbabilityModel interface {
	WinProbability(a, b *teams.Team) float64
}

// RankingModel uses FIBA ranking only. The group stage plays with this model.
type RankingModel struct{}

func (RankingModel) WinProbability(a, b *teams.Team) float64 {
	return ProbabilityAWins(a.FIBARanking, b.FIBARanking, 0, 0)
}

// FormModel adjusts the ranking probability by exhibition form. Knockout stages play with
// this model. Forms are fetched by Load and cached for the life of the model.
type FormModel struct {
	provider providers.ExhibitionFormProvider
	logger   *slog.Logger
	forms    map[string]int
}

// NewFormModel creates a form-adjusted model over the given history source.
func NewFormModel(provider providers.ExhibitionFormProvider, logger *slog.Logger) *FormModel {
	return &FormModel{
		provider: provider,
		logger:   logger,
		forms:    make(map[string]int),
	}
}

// Load fetches and caches the form of every team not already cached.
func (m *FormModel) Load(ctx context.Context, items []*teams.Team) error {
	for _, t := range items {
		if t == nil {
			continue
		}
		if _, ok := m.forms[t.ISOCode]; ok {
			continue
		}
		form, err := providers.LookupForm(ctx, m.provider, t.ISOCode, m.logger)
		if err != nil {
			return err
		}
		m.forms[t.ISOCode] = form
	}
	return nil
}

// Form returns the cached form for isoCode; unknown teams have form 0.
func (m *FormModel) Form(isoCode string) int {
	return m.forms[isoCode]
}

func (m *FormModel) WinProbability(a, b *teams.Team) float64 {
	return ProbabilityAWins(a.FIBARanking, b.FIBARanking, m.Form(a.ISOCode), m.Form(b.ISOCode))
}
