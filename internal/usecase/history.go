package usecase

import (
	"context"

	"career-predictor-service/internal/domain"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 100
)

type HistoryUseCase struct {
	predictions domain.PredictionRepository
}

func NewHistoryUseCase(predictions domain.PredictionRepository) *HistoryUseCase {
	return &HistoryUseCase{predictions: predictions}
}

// List returns the newest prediction records first, with limit clamped to
// [1, MaxHistoryLimit]. An empty log yields an empty slice, not an error.
func (uc *HistoryUseCase) List(ctx context.Context, limit int) ([]*domain.PredictionRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return uc.predictions.List(ctx, limit)
}
