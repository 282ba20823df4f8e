package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"career-predictor-service/internal/domain"
)

// MockModelRepo is a mock of ModelRepository.
type MockModelRepo struct {
	mock.Mock
}

func (m *MockModelRepo) GetCurrent(ctx context.Context) (*domain.ModelArtifact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelArtifact), args.Error(1)
}

func (m *MockModelRepo) Save(ctx context.Context, payload string, featureNames []string) (int64, error) {
	args := m.Called(ctx, payload, featureNames)
	return args.Get(0).(int64), args.Error(1)
}

// MockMetricsRepo is a mock of MetricsRepository.
type MockMetricsRepo struct {
	mock.Mock
}

func (m *MockMetricsRepo) GetCurrent(ctx context.Context) (*domain.MetricsSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetricsSnapshot), args.Error(1)
}

func (m *MockMetricsRepo) Save(ctx context.Context, snapshot *domain.MetricsSnapshot) (int64, error) {
	args := m.Called(ctx, snapshot)
	return args.Get(0).(int64), args.Error(1)
}

// MockPredictionRepo is a mock of PredictionRepository.
type MockPredictionRepo struct {
	mock.Mock
}

func (m *MockPredictionRepo) Save(ctx context.Context, input domain.StudentFeatures, predictedLabel int, probability float64) (int64, error) {
	args := m.Called(ctx, input, predictedLabel, probability)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPredictionRepo) List(ctx context.Context, limit int) ([]*domain.PredictionRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PredictionRecord), args.Error(1)
}
