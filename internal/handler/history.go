package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"career-predictor-service/internal/dto"
	"career-predictor-service/internal/usecase"
)

// GetHistory returns recent prediction records, newest first.
func (h *Handler) GetHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(usecase.DefaultHistoryLimit)))
	if err != nil || limit < 1 || limit > usecase.MaxHistoryLimit {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be an integer between 1 and 100"})
		return
	}

	records, err := h.historyUC.List(c.Request.Context(), limit)
	if err != nil {
		log.WithError(err).Error("list history failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.PredictionRecordResponse, 0, len(records))
	for _, record := range records {
		items = append(items, dto.ToPredictionRecordResponse(record))
	}

	c.JSON(http.StatusOK, items)
}
