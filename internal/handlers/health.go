package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	applog "alerscan/internal/log"
)

const (
	healthOK          = "ok"
	healthUnavailable = "unavailable"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Allergens int       `json:"allergens"`
	Time      time.Time `json:"time"`
}

// Health reports readiness: the allergen catalog must be reachable and seeded.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	applog.Debug(ctx, "health check requested", "method", r.Method)

	resp := healthResponse{
		Status: healthOK,
		Time:   time.Now().UTC(),
	}
	status := http.StatusOK

	if h.catalog == nil {
		resp.Status = healthUnavailable
		status = http.StatusServiceUnavailable
	} else if allergens, err := h.catalog.ListSeedAllergens(ctx); err != nil {
		applog.Error(ctx, "health check could not reach the catalog", "error", err)
		resp.Status = healthUnavailable
		status = http.StatusServiceUnavailable
	} else {
		resp.Allergens = len(allergens)
		if resp.Allergens == 0 {
			resp.Status = healthUnavailable
			status = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(ctx, "failed to encode health response", "error", err)
		return
	}
	applog.Debug(ctx, "health check responded", "status", resp.Status)
}
