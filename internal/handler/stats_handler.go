package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kalakar-academy/academy-api/internal/service"
	"github.com/kalakar-academy/academy-api/pkg/response"
)

// StatsHandler exposes the aggregate statistics endpoint.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs StatsHandler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Stats godoc
// @Summary Aggregate enrollment and contact statistics
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats [get]
func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Envelope{Success: true, Data: stats})
}
