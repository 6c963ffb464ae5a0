package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goaguide/directory-service/internal/app/directory/service"
)

type StatsHandler struct {
	statsService service.StatsServiceInterface
}

func NewStatsHandler(statsService service.StatsServiceInterface) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats GET /stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.Get(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to fetch stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
