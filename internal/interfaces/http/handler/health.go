package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// Pinger checks that a dependency answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service liveness and dependency state
type HealthHandler struct {
	BaseHandler
	db           Pinger
	cacheBackend string
	version      string
	pingTimeout  time.Duration
	startTime    time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger, cacheBackend, version string) *HealthHandler {
	return &HealthHandler{
		db:           db,
		cacheBackend: cacheBackend,
		version:      version,
		pingTimeout:  2 * time.Second,
		startTime:    time.Now(),
	}
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health godoc
// @Summary      Health check
// @Description  Pings the database; answers 503 when it is unreachable
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthResponse}
// @Failure      503 {object} dto.Response{data=HealthResponse}
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.pingTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "ok",
		Database:  "up",
		Cache:     h.cacheBackend,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	status := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "down"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.Response{Success: status == http.StatusOK, Data: resp})
}
