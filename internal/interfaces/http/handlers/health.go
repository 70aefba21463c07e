package handlers

import (
	"net/http"
	"time"

	httpContracts "github.com/sawpanic/cea/internal/http"
)

// Health handles GET /health endpoint
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	forwarding := "disabled"
	if h.forwardingState != nil {
		forwarding = h.forwardingState()
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.writeJSON(w, http.StatusOK, httpContracts.HealthResponse{
		Status:          "healthy",
		Timestamp:       time.Now().UTC(),
		Uptime:          time.Since(h.started).Truncate(time.Second).String(),
		Version:         h.version,
		Alerts:          h.advisor.Alerts().Len(),
		Companies:       h.companies.Len(),
		AlertForwarding: forwarding,
	})
}
