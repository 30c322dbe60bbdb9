package server

import (
	"log/slog"

	"github.com/preston-bernstein/tournament-sim/internal/config"
	"github.com/preston-bernstein/tournament-sim/internal/metrics"
	"github.com/preston-bernstein/tournament-sim/internal/providers"
)

// providerFactory assembles the roster provider with the shared retry wrapper.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

func (f providerFactory) wrap(cfg config.Config, base providers.DataProvider) providers.DataProvider {
	name := normalizeProviderName(cfg.Roster.Source, base)
	return providers.NewRetryingProvider(base, f.logger, f.metrics, name, cfg.Roster.RetryAttempts, cfg.Roster.RetryBackoff)
}
