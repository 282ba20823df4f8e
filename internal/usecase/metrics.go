package usecase

import (
	"context"

	"career-predictor-service/internal/domain"
)

type MetricsUseCase struct {
	metrics domain.MetricsRepository
}

func NewMetricsUseCase(metrics domain.MetricsRepository) *MetricsUseCase {
	return &MetricsUseCase{metrics: metrics}
}

// Current returns the newest evaluation snapshot. A store without any
// snapshot yields ErrMetricsNotFound, never an empty default.
func (uc *MetricsUseCase) Current(ctx context.Context) (*domain.MetricsSnapshot, error) {
	return uc.metrics.GetCurrent(ctx)
}
