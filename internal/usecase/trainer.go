package usecase

import (
	"context"

	"career-predictor-service/internal/domain"
	"career-predictor-service/internal/ml"
)

// topImportances is how many ranked feature importances a snapshot keeps.
const topImportances = 10

// TrainingUseCase is the write side used by the offline trainer. It appends
// new rows; prior artifacts and snapshots stay untouched as history.
type TrainingUseCase struct {
	models  domain.ModelRepository
	metrics domain.MetricsRepository
}

func NewTrainingUseCase(models domain.ModelRepository, metrics domain.MetricsRepository) *TrainingUseCase {
	return &TrainingUseCase{models: models, metrics: metrics}
}

// SaveModel encodes the pipeline and stores it as the new current artifact
// together with its feature-name manifest.
func (uc *TrainingUseCase) SaveModel(ctx context.Context, pipeline *ml.Pipeline) (int64, error) {
	payload, err := pipeline.Encode()
	if err != nil {
		return 0, err
	}
	return uc.models.Save(ctx, payload, pipeline.FeatureNames)
}

// SaveMetrics stores a new current evaluation snapshot.
func (uc *TrainingUseCase) SaveMetrics(ctx context.Context, eval *ml.Evaluation, importances []domain.FeatureImportance) (int64, error) {
	if len(importances) > topImportances {
		importances = importances[:topImportances]
	}
	snapshot := &domain.MetricsSnapshot{
		Accuracy:           eval.Accuracy,
		Precision:          eval.Precision,
		Recall:             eval.Recall,
		F1Score:            eval.F1Score,
		ROCAUC:             eval.ROCAUC,
		FeatureImportances: importances,
		ROCCurve:           eval.Curve,
	}
	return uc.metrics.Save(ctx, snapshot)
}
