package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-predictor-service/internal/domain"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "database temporarily unavailable"})

	case errors.Is(err, domain.ErrMetricsNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": domain.ErrMetricsNotFound.Error()})

	case errors.Is(err, domain.ErrModelNotFound),
		errors.Is(err, domain.ErrArtifactDecode),
		errors.Is(err, domain.ErrInferenceFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "prediction service unavailable"})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "an unexpected error occurred"})
	}
}
