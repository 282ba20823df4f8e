package domain

import "context"

// ModelRepository stores trained pipeline artifacts. GetCurrent returns the
// most recently created row and fails with ErrModelNotFound when none exists.
type ModelRepository interface {
	GetCurrent(ctx context.Context) (*ModelArtifact, error)
	Save(ctx context.Context, payload string, featureNames []string) (int64, error)
}

// MetricsRepository stores evaluation snapshots, newest row wins.
type MetricsRepository interface {
	GetCurrent(ctx context.Context) (*MetricsSnapshot, error)
	Save(ctx context.Context, snapshot *MetricsSnapshot) (int64, error)
}

// PredictionRepository is the append-only prediction audit log.
type PredictionRepository interface {
	Save(ctx context.Context, input StudentFeatures, predictedLabel int, probability float64) (int64, error)
	List(ctx context.Context, limit int) ([]*PredictionRecord, error)
}
