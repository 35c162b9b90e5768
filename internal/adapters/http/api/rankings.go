package api

import (
	"net/http"
	"strings"

	"github.com/swishlab/hooprank/internal/domain/ncaa"
)

// RankingsHandler serves the NCAA boards.
type RankingsHandler struct {
	deps Dependencies
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps Dependencies) *RankingsHandler {
	return &RankingsHandler{deps: deps}
}

// HandleGetRankings handles GET /rankings?limit=N&model=V requests.
func (h *RankingsHandler) HandleGetRankings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	n, err := parseLimit(r, h.deps.MaxRankingLimit())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	variant := ncaa.Variant(r.URL.Query().Get("model"))
	teams, err := h.deps.TopTeams(r.Context(), variant, n)
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// HandleGetTeam handles GET /rankings/{team}?model=V requests.
func (h *RankingsHandler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/rankings/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	variant := ncaa.Variant(r.URL.Query().Get("model"))
	team, err := h.deps.Team(r.Context(), variant, name)
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}
