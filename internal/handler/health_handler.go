package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kalakar-academy/academy-api/pkg/database"
)

// HealthHandler reports process liveness and database connectivity.
type HealthHandler struct {
	pool *database.Pool
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(pool *database.Pool) *HealthHandler {
	return &HealthHandler{pool: pool}
}

// Health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	connected := h.pool != nil && h.pool.Connected()
	c.JSON(http.StatusOK, gin.H{
		"status":            "OK",
		"message":           "Kalakar Art Academy API is running",
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
		"databaseConnected": connected,
	})
}
