package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"career-predictor-service/internal/dto"
)

// GetMetrics returns the current evaluation snapshot of the trained model.
func (h *Handler) GetMetrics(c *gin.Context) {
	snapshot, err := h.metricsUC.Current(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("get metrics failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMetricsResponse(snapshot))
}
