package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// ParseResult splits an exhibition result string "<teamScore>-<opponentScore>".
func ParseResult(result string) (int, int, error) {
	own, opp, ok := strings.Cut(strings.TrimSpace(result), "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedResult, result)
	}
	ownScore, err := strconv.Atoi(strings.TrimSpace(own))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedResult, result)
	}
	oppScore, err := strconv.Atoi(strings.TrimSpace(opp))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedResult, result)
	}
	return ownScore, oppScore, nil
}

// Form sums the score differential over all records. Malformed results are skipped and
// counted in the second return value.
func Form(records []ExhibitionRecord) (int, int) {
	form, skipped := 0, 0
	for _, rec := range records {
		own, opp, err := ParseResult(rec.Result)
		if err != nil {
			skipped++
			continue
		}
		form += own - opp
	}
	return form, skipped
}

// LookupForm fetches a team's exhibition history and reduces it to a form score.
// A nil provider or an empty history yields 0.
func LookupForm(ctx context.Context, provider ExhibitionFormProvider, isoCode string, logger *slog.Logger) (int, error) {
	if provider == nil {
		return 0, nil
	}
	records, err := provider.Exhibitions(ctx, isoCode)
	if err != nil {
		return 0, err
	}
	form, skipped := Form(records)
	if skipped > 0 && logger != nil {
		logger.Warn("skipped malformed exhibition results", slog.String("iso_code", isoCode), slog.Int("count", skipped))
	}
	return form, nil
}
