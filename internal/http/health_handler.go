package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// HealthHandler expone el chequeo de salud del servicio.
type HealthHandler struct {
	logger *zap.Logger
	pool   *pgxpool.Pool
}

func NewHealthHandler(logger *zap.Logger, pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{logger: logger, pool: pool}
}

// Healthz maneja GET /healthz.
func (h *HealthHandler) Healthz(c *gin.Context) {
	if h.pool != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := h.pool.Ping(ctx); err != nil {
			h.logger.Warn("db ping failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": "down"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
