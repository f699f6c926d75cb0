package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pfrederiksen/six-degrees/internal/cache"
)

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	store     cache.Store
	version   string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler. store may be nil.
func NewHealthHandler(store cache.Store, version string) *HealthHandler {
	return &HealthHandler{store: store, version: version, startTime: time.Now()}
}

type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	CacheEntries  int     `json:"cache_entries"`
	Cache         string  `json:"cache"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Liveness handles GET /api/v1/health
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		Cache:         "none",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	if h.store != nil {
		n, err := h.store.Len(c.Request.Context())
		if err != nil {
			resp.Cache = "unavailable"
		} else {
			resp.Cache = "ok"
			resp.CacheEntries = n
		}
	}

	c.JSON(http.StatusOK, resp)
}
