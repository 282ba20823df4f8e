package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"career-predictor-service/internal/domain"
	"career-predictor-service/internal/testutil"
)

func TestMetricsCurrentReturnsSnapshot(t *testing.T) {
	metricsRepo := new(testutil.MockMetricsRepo)
	uc := NewMetricsUseCase(metricsRepo)

	snapshot := &domain.MetricsSnapshot{
		ID: 2, Accuracy: 0.87, Precision: 0.85, Recall: 0.86, F1Score: 0.85, ROCAUC: 0.9,
		FeatureImportances: []domain.FeatureImportance{{Feature: "University_GPA", Importance: 0.35}},
		ROCCurve:           domain.ROCCurve{FPR: []float64{0, 1}, TPR: []float64{0, 1}},
	}
	metricsRepo.On("GetCurrent", mock.Anything).Return(snapshot, nil)

	got, err := uc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)
}

func TestMetricsCurrentNotFoundIsNeverDefaulted(t *testing.T) {
	metricsRepo := new(testutil.MockMetricsRepo)
	uc := NewMetricsUseCase(metricsRepo)

	metricsRepo.On("GetCurrent", mock.Anything).Return(nil, domain.ErrMetricsNotFound)

	got, err := uc.Current(context.Background())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrMetricsNotFound)
}
