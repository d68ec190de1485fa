package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recipeshare/internal/logging"
	"recipeshare/internal/store"
)

type HealthHandler struct {
	store store.Pinger
}

func NewHealthHandler(s store.Pinger) *HealthHandler {
	return &HealthHandler{store: s}
}

// Welcome handles GET /
func (h *HealthHandler) Welcome(c *gin.Context) {
	respondOK(c, gin.H{"message": "Welcome to the Recipe Sharing API"})
}

// Health handles GET /healthz
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	respondOK(c, gin.H{"status": "ok"})
}
