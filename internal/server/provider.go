package server

import (
	"log/slog"

	"github.com/preston-bernstein/tournament-sim/internal/config"
	"github.com/preston-bernstein/tournament-sim/internal/logging"
	"github.com/preston-bernstein/tournament-sim/internal/providers"
	"github.com/preston-bernstein/tournament-sim/internal/providers/file"
	"github.com/preston-bernstein/tournament-sim/internal/providers/fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Roster.Source {
	case config.RosterSourceFixture, "":
		return fixture.New()
	case config.RosterSourceFile:
		return file.New(cfg.Roster.GroupsPath, cfg.Roster.ExhibitionsPath)
	default:
		logging.Warn(logger, "unknown roster source, falling back to fixture", slog.String("provider", cfg.Roster.Source))
		return fixture.New()
	}
}
