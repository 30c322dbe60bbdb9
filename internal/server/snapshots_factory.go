package server

import (
	"log/slog"

	"github.com/preston-bernstein/tournament-sim/internal/app/tournaments"
	"github.com/preston-bernstein/tournament-sim/internal/config"
	"github.com/preston-bernstein/tournament-sim/internal/logging"
	"github.com/preston-bernstein/tournament-sim/internal/snapshots"
)

type snapshotComponents struct {
	writer tournaments.SnapshotWriter
	reader tournaments.SnapshotReader
}

// buildSnapshots returns nil components when snapshots are disabled.
func buildSnapshots(cfg config.Config, logger *slog.Logger) snapshotComponents {
	if !cfg.Snapshots.Enabled {
		return snapshotComponents{}
	}
	writer := snapshots.NewWriter(cfg.Snapshots.Dir, cfg.Snapshots.Retention)
	logging.Info(logger, "run snapshots enabled",
		slog.String("dir", writer.BasePath()),
		slog.Int("retention", cfg.Snapshots.Retention),
	)
	return snapshotComponents{
		writer: writer,
		reader: snapshots.NewFSStore(cfg.Snapshots.Dir),
	}
}
