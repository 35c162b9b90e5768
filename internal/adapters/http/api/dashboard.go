package api

import (
	"io"
	"net/http"
	"time"
)

// dashboardHandler serves the embedded dashboard page.
type dashboardHandler struct{}

func newDashboardHandler() *dashboardHandler {
	return &dashboardHandler{}
}

// HandleDashboard handles GET /dashboard requests with a static HTML page
// that pulls /rankings, /goat and /stats client-side.
func (h *dashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	// http.ServeFileFS requires Go 1.22; this is its equivalent for Go 1.21.
	f, err := dashboardFS.Open("dashboard.html")
	if err != nil {
		http.Error(w, "404 page not found", http.StatusNotFound)
		return
	}
	defer f.Close()
	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.Error(w, "500 internal server error", http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, "dashboard.html", time.Time{}, rs)
}
