// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/swishlab/hooprank/internal/adapters/repository"
	"github.com/swishlab/hooprank/internal/domain/goat"
	"github.com/swishlab/hooprank/internal/domain/ncaa"
	"github.com/swishlab/hooprank/internal/domain/predict"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Board reads.
	TopTeams(ctx context.Context, v ncaa.Variant, n int) ([]ncaa.TeamRanking, error)
	Team(ctx context.Context, v ncaa.Variant, name string) (ncaa.TeamRanking, error)
	TopPlayers(ctx context.Context, n int) ([]goat.PlayerRanking, error)
	Player(ctx context.Context, name string) (goat.PlayerRanking, error)

	// Predictions on the default variant board.
	Predict(ctx context.Context, team1, team2 string, loc predict.Location) (predict.Prediction, error)

	// Refresh reruns the pipeline.
	Refresh(ctx context.Context) error

	// Serving configuration.
	Variant() ncaa.Variant
	MaxRankingLimit() int
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	rankingsHandler  *RankingsHandler
	goatHandler      *GoatHandler
	predictHandler   *PredictHandler
	refreshHandler   *RefreshHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		rankingsHandler:  NewRankingsHandler(deps),
		goatHandler:      NewGoatHandler(deps),
		predictHandler:   NewPredictHandler(deps),
		refreshHandler:   NewRefreshHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/rankings/", MetricsMiddleware(s.rankingsHandler.HandleGetTeam, "rankings_team"))
	mux.HandleFunc("/goat", MetricsMiddleware(s.goatHandler.HandleGetBoard, "goat"))
	mux.HandleFunc("/goat/", MetricsMiddleware(s.goatHandler.HandleGetPlayer, "goat_player"))
	mux.HandleFunc("/predict", MetricsMiddleware(s.predictHandler.HandlePredict, "predict"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandleRefresh, "refresh"))
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

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, predict.ErrTeamNotFound)
}
