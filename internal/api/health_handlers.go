package api

import (
	"context"
	"net/http"
	"time"

	commonhttp "gymlink-api/internal/common/http"
)

type readiness struct {
	Status         string `json:"status"`
	CatalogRecords int    `json:"catalogRecords"`
	Cache          string `json:"cache"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	commonhttp.JSON(w, http.StatusOK, map[string]string{"status": "healthy"}, h.logger)
}

// ready fails when the catalog is empty. Cache trouble is reported but does not fail
// readiness since requests still succeed without it.
func (h *handlers) ready(w http.ResponseWriter, r *http.Request) {
	body := readiness{
		Status:         "ready",
		CatalogRecords: h.directory.CatalogSize(),
		Cache:          "disabled",
	}

	if h.cache.Enabled() {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		body.Cache = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			body.Cache = "unavailable"
			h.logger.Warn("cache ping failed", map[string]interface{}{"error": err})
		}
	}

	status := http.StatusOK
	if body.CatalogRecords == 0 {
		body.Status = "not ready"
		status = http.StatusServiceUnavailable
	}

	commonhttp.JSON(w, status, body, h.logger)
}
