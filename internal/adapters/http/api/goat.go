package api

import (
	"net/http"
	"net/url"
	"strings"
)

// GoatHandler serves the GOAT board.
type GoatHandler struct {
	deps Dependencies
}

// NewGoatHandler creates a new GOAT handler.
func NewGoatHandler(deps Dependencies) *GoatHandler {
	return &GoatHandler{deps: deps}
}

// HandleGetBoard handles GET /goat?limit=N requests.
func (h *GoatHandler) HandleGetBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	n, err := parseLimit(r, h.deps.MaxRankingLimit())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	players, err := h.deps.TopPlayers(r.Context(), n)
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// HandleGetPlayer handles GET /goat/{player} requests.
func (h *GoatHandler) HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/goat/")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	player, err := h.deps.Player(r.Context(), name)
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}
