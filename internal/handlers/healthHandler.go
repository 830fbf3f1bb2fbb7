package handlers

import (
	"context"
	"github.com/gin-gonic/gin"
	"log/slog"
	"net/http"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	log *slog.Logger
	db  Pinger
}

func NewHealthHandler(log *slog.Logger, db Pinger) *HealthHandler {
	return &HealthHandler{log: log, db: db}
}

// Health
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.log.Error("health check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
