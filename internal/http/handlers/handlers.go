package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	nethttp "net/http"
	"strings"

	"github.com/preston-bernstein/tournament-sim/internal/app/simulation"
	"github.com/preston-bernstein/tournament-sim/internal/app/tournaments"
	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
	"github.com/preston-bernstein/tournament-sim/internal/http/requestutil"
	"github.com/preston-bernstein/tournament-sim/internal/logging"
	"github.com/preston-bernstein/tournament-sim/internal/providers"
	"github.com/preston-bernstein/tournament-sim/internal/report"
	"github.com/preston-bernstein/tournament-sim/internal/scheduler"
)

const tournamentsPath = "/tournaments"

// TournamentService is the subset of the tournaments service the handlers need.
type TournamentService interface {
	Run(ctx context.Context, seed uint64) (tournament.Result, error)
	Tournaments(ctx context.Context) ([]tournament.Summary, error)
	TournamentByID(ctx context.Context, id string) (tournament.Result, error)
}

// ListResponse is the body of GET /tournaments.
type ListResponse struct {
	Tournaments []tournament.Summary `json:"tournaments"`
}

// Handler wires HTTP routes to the tournaments service.
type Handler struct {
	svc      TournamentService
	logger   *slog.Logger
	statusFn func() scheduler.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case the service is always ready.
func NewHandler(svc TournamentService, logger *slog.Logger, statusFn func() scheduler.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == tournamentsPath || r.URL.Path == tournamentsPath+"/":
		h.Tournaments(w, r)
	case strings.HasPrefix(r.URL.Path, tournamentsPath+"/"):
		h.TournamentByID(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the scheduler has completed a run recently.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Tournaments lists stored runs on GET and plays a new one on POST.
func (h *Handler) Tournaments(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.Method {
	case nethttp.MethodGet:
		h.listTournaments(w, r)
	case nethttp.MethodPost:
		h.runTournament(w, r)
	default:
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *Handler) listTournaments(w nethttp.ResponseWriter, r *nethttp.Request) {
	summaries, err := h.svc.Tournaments(r.Context())
	if err != nil {
		logging.Error(loggerFromContext(r, h.logger), "list tournaments failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "failed to list tournaments", h.logger)
		return
	}
	if summaries == nil {
		summaries = []tournament.Summary{}
	}
	writeJSON(w, nethttp.StatusOK, ListResponse{Tournaments: summaries}, h.logger)
}

func (h *Handler) runTournament(w nethttp.ResponseWriter, r *nethttp.Request) {
	seed, err := requestutil.ParseSeed(r.URL.Query().Get("seed"))
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid seed (expected unsigned integer)", h.logger)
		return
	}

	result, err := h.svc.Run(r.Context(), seed)
	status, message := runStatus(result, err)
	if message != "" {
		logging.Warn(loggerFromContext(r, h.logger), "tournament run rejected", "error", err, logging.FieldStatusCode, status)
		writeError(w, r, status, message, h.logger)
		return
	}
	writeJSON(w, status, result, h.logger)
}

// runStatus maps a run outcome to a response. A stored run is returned even when it ended
// without medals; its Error field carries the reason.
func runStatus(result tournament.Result, err error) (int, string) {
	switch {
	case errors.Is(err, tournaments.ErrStoreFailed):
		return nethttp.StatusInternalServerError, "failed to store tournament"
	case err == nil || result.ID != "":
		return nethttp.StatusCreated, ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nethttp.StatusServiceUnavailable, "tournament run canceled"
	case errors.Is(err, simulation.ErrInvalidGroupSize), errors.Is(err, simulation.ErrInvalidParticipant):
		return nethttp.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, providers.ErrGroupNotFound),
		errors.Is(err, providers.ErrProviderUnavailable):
		return nethttp.StatusBadGateway, "roster unavailable"
	default:
		if _, ok := providers.AsSourceError(err); ok {
			return nethttp.StatusBadGateway, "roster unavailable"
		}
		return nethttp.StatusInternalServerError, "tournament run failed"
	}
}

// TournamentByID serves GET /tournaments/{id} and GET /tournaments/{id}/report.
func (h *Handler) TournamentByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, tournamentsPath+"/")
	segment, asReport := strings.CutSuffix(rest, "/report")
	id, ok := requestutil.RunID(segment)
	if !ok {
		writeError(w, r, nethttp.StatusBadRequest, "invalid tournament id", h.logger)
		return
	}

	result, err := h.svc.TournamentByID(r.Context(), id)
	if errors.Is(err, tournament.ErrNotFound) {
		writeError(w, r, nethttp.StatusNotFound, "tournament not found", h.logger)
		return
	}
	if err != nil {
		logging.Error(loggerFromContext(r, h.logger), "load tournament failed", err, logging.FieldRunID, id)
		writeError(w, r, nethttp.StatusInternalServerError, "failed to load tournament", h.logger)
		return
	}

	if asReport {
		writeText(w, nethttp.StatusOK, func(out io.Writer) error {
			return report.Render(out, result)
		}, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, result, h.logger)
}
