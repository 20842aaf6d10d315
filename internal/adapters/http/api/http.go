// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	service "github.com/hoopsight/hoopsight/internal/app"
	"github.com/hoopsight/hoopsight/internal/domain/model"
	"github.com/hoopsight/hoopsight/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// BestGame returns the highest-scoring game in the window.
	BestGame(ctx context.Context, days int, favoriteTeam string) (service.ScoredGame, error)

	// RankedGames returns every game in the window, highest score first.
	RankedGames(ctx context.Context, days int, favoriteTeam string) ([]service.ScoredGame, error)

	// ReferenceSets returns the cached top-tier teams and notable players.
	ReferenceSets(ctx context.Context) (model.ReferenceSets, error)
}

// Server wires HTTP routes for the recommendation API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	gamesHandler  *GamesHandler
	metaHandler   *MetaHandler
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxLookbackDays caps the days query parameter. Defaults to 30.
func WithMaxLookbackDays(days int) Option {
	return func(s *Server) {
		if days >= 1 {
			s.gamesHandler.maxDays = days
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		gamesHandler:  NewGamesHandler(deps),
		metaHandler:   NewMetaHandler(deps),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Get("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/best-game", MetricsMiddleware(s.gamesHandler.HandleBestGame, "best_game"))
		r.Get("/games", MetricsMiddleware(s.gamesHandler.HandleGames, "games"))
		r.Get("/meta", MetricsMiddleware(s.metaHandler.HandleMeta, "meta"))
	})

	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates recommendation errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoGames):
		writeError(w, http.StatusNotFound, "no_games", err)
	case errors.Is(err, service.ErrInvalidDays):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// queryDays parses and bounds the days parameter. Missing means the
// default window of one week.
func queryDays(r *http.Request, maxDays int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("days"))
	if raw == "" {
		return defaultDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrBadRequest
	}
	if days < 1 || days > maxDays {
		return 0, ErrBadRequest
	}
	return days, nil
}

func queryTeam(r *http.Request) string {
	return strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("team")))
}

const defaultDays = 7

// formatDate keeps response dates in the same shape the store uses.
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
