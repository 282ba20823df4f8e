package handler

import (
	"github.com/gin-gonic/gin"

	"career-predictor-service/internal/usecase"
)

type Handler struct {
	predictor *usecase.Predictor
	metricsUC *usecase.MetricsUseCase
	historyUC *usecase.HistoryUseCase
}

func New(predictor *usecase.Predictor, metricsUC *usecase.MetricsUseCase, historyUC *usecase.HistoryUseCase) *Handler {
	return &Handler{
		predictor: predictor,
		metricsUC: metricsUC,
		historyUC: historyUC,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/predict", h.Predict)
	r.GET("/metrics", h.GetMetrics)
	r.GET("/history", h.GetHistory)
}
