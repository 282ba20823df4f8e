package usecase

import (
	"context"
	"fmt"
	"math"
	"sync"

	log "github.com/sirupsen/logrus"

	"career-predictor-service/internal/domain"
	"career-predictor-service/internal/ml"
)

// Predictor serves predictions from the current trained pipeline. The decoded
// pipeline is cached in-process on first use and kept for the lifetime of the
// Predictor; a retrained model is only picked up after a restart.
type Predictor struct {
	models      domain.ModelRepository
	predictions domain.PredictionRepository

	mu       sync.Mutex
	pipeline *ml.Pipeline
}

func NewPredictor(models domain.ModelRepository, predictions domain.PredictionRepository) *Predictor {
	return &Predictor{models: models, predictions: predictions}
}

// EnsureLoaded returns the cached pipeline, fetching and decoding the current
// artifact on first call. Concurrent first calls are serialized so at most one
// decode happens; on failure nothing is cached and the next call retries.
func (p *Predictor) EnsureLoaded(ctx context.Context) (*ml.Pipeline, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pipeline != nil {
		return p.pipeline, nil
	}

	artifact, err := p.models.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}

	pipeline, err := ml.DecodePipeline(artifact.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactDecode, err)
	}

	p.pipeline = pipeline
	return pipeline, nil
}

// Predict runs one inference and then appends the result to the audit log.
// The audit write is best-effort: its failure is logged and never surfaced,
// and it happens outside the cache lock so it cannot block other requests.
func (p *Predictor) Predict(ctx context.Context, features domain.StudentFeatures) (*domain.PredictionResult, error) {
	pipeline, err := p.EnsureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	label, err := pipeline.Predict(features)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInferenceFailed, err)
	}
	probability, err := pipeline.PredictProba(features)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInferenceFailed, err)
	}

	result := &domain.PredictionResult{
		PredictedLabel: label,
		Probability:    probability,
		Confidence:     Confidence(probability),
	}

	if _, err := p.predictions.Save(ctx, features, label, probability); err != nil {
		log.WithError(err).Warn("failed to save prediction record")
	}

	return result, nil
}

// Confidence maps a positive-class probability onto [0,1] distance from the
// decision boundary: 0 at p=0.5, 1 at p=0 or p=1.
func Confidence(probability float64) float64 {
	return math.Abs(probability-0.5) * 2
}
