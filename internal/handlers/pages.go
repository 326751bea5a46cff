package handlers

import (
	"context"
	"net/http"
	"time"

	"prodtrack/internal/response"

	"github.com/gin-gonic/gin"
)

// GET /
func (h *Handler) Index(c *gin.Context) {
	response.RespondOK(c, gin.H{"message": "prodtrack backend is running"})
}

// GET /health
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.log.Warn("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	response.RespondOK(c, gin.H{"status": "ok"})
}
