package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/preston-bernstein/tournament-sim/internal/http/handlers"
	"github.com/preston-bernstein/tournament-sim/internal/http/middleware"
	"github.com/preston-bernstein/tournament-sim/internal/metrics"
)

// NewRouter registers the tournament routes and wraps them with request logging and metrics.
func NewRouter(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/tournaments", handler.Tournaments)
	mux.HandleFunc("/tournaments/", handler.TournamentByID)
	return middleware.LoggingMiddleware(logger, recorder, mux)
}
