package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldirectory/internal/app/models/dto"
	"github.com/yigit/schooldirectory/internal/pkg/logger"
)

// Version of the API
const Version = "1.0.0"

// PingFunc checks that the backing store answers
type PingFunc func(ctx context.Context) error

// HealthController serves the root and health endpoints
type HealthController struct {
	storeDriver string
	ping        PingFunc
}

// NewHealthController creates a new HealthController. ping may be nil for stores
// that cannot become unavailable.
func NewHealthController(storeDriver string, ping PingFunc) *HealthController {
	return &HealthController{
		storeDriver: storeDriver,
		ping:        ping,
	}
}

// ServiceInfo describes the API
type ServiceInfo struct {
	Message   string            `json:"message" example:"School Directory API"`
	Version   string            `json:"version" example:"1.0.0"`
	Docs      string            `json:"docs" example:"/swagger/index.html"`
	Endpoints map[string]string `json:"endpoints"`
}

// HealthStatus reports the state of the service
type HealthStatus struct {
	Status string `json:"status" example:"ok" enums:"ok,degraded"`
	Store  string `json:"store" example:"postgres"`
}

// Root returns service information
// @Summary Service information
// @Tags root
// @Produce json
// @Success 200 {object} controllers.ServiceInfo
// @Router / [get]
func (c *HealthController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, ServiceInfo{
		Message: "School Directory API",
		Version: Version,
		Docs:    "/swagger/index.html",
		Endpoints: map[string]string{
			"schools":   "/api/v1/schools",
			"faculties": "/api/v1/faculties",
			"health":    "/api/v1/health",
		},
	})
}

// Health reports whether the store is reachable
// @Summary Health check
// @Tags root
// @Produce json
// @Success 200 {object} dto.APIResponse{data=controllers.HealthStatus}
// @Failure 503 {object} dto.APIResponse{data=controllers.HealthStatus}
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	status := HealthStatus{Status: "ok", Store: c.storeDriver}

	if c.ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()
		if err := c.ping(pingCtx); err != nil {
			logger.Warn().Err(err).Msg("Health check failed to reach the store")
			status.Status = "degraded"
			resp := dto.NewAPIResponse(status, "Store unreachable")
			resp.Success = false
			ctx.JSON(http.StatusServiceUnavailable, resp)
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(status, "Service healthy"))
}
