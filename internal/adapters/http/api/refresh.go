package api

import "net/http"

// RefreshHandler triggers pipeline reruns.
type RefreshHandler struct {
	deps Dependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps Dependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

// HandleRefresh handles POST /refresh requests. The pipeline runs
// synchronously; the call returns once every board has been swapped.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	if err := h.deps.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "refresh_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}
