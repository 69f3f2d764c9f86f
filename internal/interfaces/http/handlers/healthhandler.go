package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reelpop-inc/reelpop/internal/shared/logger"
	"github.com/reelpop-inc/reelpop/internal/shared/version"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	ping   func(ctx context.Context) error
	logger logger.Interface
}

func NewHealthHandler(ping func(ctx context.Context) error, logger logger.Interface) *HealthHandler {
	return &HealthHandler{ping: ping, logger: logger}
}

// @Summary	Health check
// @Tags		health
// @Produce	json
// @Success	200	{object}	map[string]string
// @Failure	503	{object}	map[string]string
// @Router		/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "version": version.Version})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Version})
}
