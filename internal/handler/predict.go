package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"career-predictor-service/internal/dto"
)

// Predict runs one inference for the submitted student features.
func (h *Handler) Predict(c *gin.Context) {
	var req dto.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	result, err := h.predictor.Predict(c.Request.Context(), dto.ToStudentFeatures(req))
	if err != nil {
		log.WithError(err).Error("prediction failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPredictionResponse(result))
}
