package analytics

import (
	"encoding/json"
	"net/http"
)

type AnalyticsHandlers struct {
	Service *AnalyticsService
}

func NewAnalyticsHandlers(service *AnalyticsService) *AnalyticsHandlers {
	return &AnalyticsHandlers{Service: service}
}

func (h *AnalyticsHandlers) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Service.Snapshot(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}
