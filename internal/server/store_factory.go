package server

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/tournament-sim/internal/app/tournaments"
	"github.com/preston-bernstein/tournament-sim/internal/config"
	"github.com/preston-bernstein/tournament-sim/internal/logging"
	"github.com/preston-bernstein/tournament-sim/internal/store"
)

// resultStore is a tournaments.Store that holds resources until closed.
type resultStore interface {
	tournaments.Store
	Close() error
}

var openSQLite = func(ctx context.Context, path string) (resultStore, error) {
	s, err := store.OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func buildStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (resultStore, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory, "":
		return store.NewMemoryStoreWithRetention(cfg.Store.Retention), nil
	case config.StoreSQLite:
		s, err := openSQLite(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		logging.Info(logger, "sqlite result store opened", slog.String("path", cfg.Store.SQLitePath))
		return s, nil
	default:
		logging.Warn(logger, "unknown result store, falling back to memory", slog.String("store", cfg.Store.Driver))
		return store.NewMemoryStoreWithRetention(cfg.Store.Retention), nil
	}
}
