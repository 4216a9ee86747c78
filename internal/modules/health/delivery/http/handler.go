package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"anoa.com/socialfeed/pkg/database"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, h.db); err != nil {
		slog.WarnContext(ctx, "health check failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": h.db.Dialector.Name()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": h.db.Dialector.Name()})
}
