package handlers

import (
	"net/http"
	"parcel-route-service/internal/ports"
)

// HealthHandler provides a liveness check that also reports whether routes were computed.
type HealthHandler struct {
	Tracker ports.DeliveryTracker
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]any{
		"status": "ok",
		"routed": h.Tracker.Plans() != nil,
	}
	writeJSON(w, r, http.StatusOK, res)
}
