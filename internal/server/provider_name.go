package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/tournament-sim/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name for metrics and logs, derived
// from the provider type when no source is configured.
func normalizeProviderName(raw string, provider providers.DataProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
