package api

import (
	"net/http"
	"strings"

	"github.com/swishlab/hooprank/internal/domain/predict"
)

// PredictHandler serves game predictions.
type PredictHandler struct {
	deps Dependencies
}

// NewPredictHandler creates a new prediction handler.
func NewPredictHandler(deps Dependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// HandlePredict handles GET /predict?team1=A&team2=B&location=L requests.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	team1 := strings.TrimSpace(q.Get("team1"))
	team2 := strings.TrimSpace(q.Get("team2"))
	if team1 == "" || team2 == "" || team1 == team2 {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	loc, err := predict.ParseLocation(q.Get("location"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	p, err := h.deps.Predict(r.Context(), team1, team2, loc)
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
