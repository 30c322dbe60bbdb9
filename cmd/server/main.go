package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/tournament-sim/internal/config"
	"github.com/preston-bernstein/tournament-sim/internal/logging"
	"github.com/preston-bernstein/tournament-sim/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	dotenvErr := config.LoadDotEnv(os.Getenv("ENV_FILE"))
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.Metrics.ServiceName,
		Version: appVersion,
	})
	if dotenvErr != nil {
		logger.Warn("env file not loaded", "error", dotenvErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("server setup failed", "error", err)
		os.Exit(1)
	}
	srv.Run(ctx, stop)
}
