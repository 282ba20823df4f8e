package usecase

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"career-predictor-service/internal/domain"
	"career-predictor-service/internal/ml"
	"career-predictor-service/internal/testutil"
)

func trainedArtifact(t *testing.T) *domain.ModelArtifact {
	t.Helper()

	rows := make([]domain.StudentFeatures, 0, 30)
	labels := make([]int, 0, 30)
	for i := 0; i < 30; i++ {
		gpa := 2.0 + float64(i)*0.25
		rows = append(rows, domain.StudentFeatures{
			UniversityGPA:        gpa,
			FieldOfStudy:         []string{"Computer Science", "Arts"}[i%2],
			Gender:               []string{"Male", "Female"}[i%2],
			InternshipsCompleted: i % 3,
			SoftSkillsScore:      5.0 + float64(i%5),
			NetworkingScore:      4.0 + float64(i%6),
		})
		label := 0
		if gpa >= 5.5 {
			label = 1
		}
		labels = append(labels, label)
	}

	pipeline, err := ml.Fit(rows, labels, ml.ForestConfig{NumTrees: 10, MaxDepth: 3, MinSamplesSplit: 2, Seed: 7})
	require.NoError(t, err)
	payload, err := pipeline.Encode()
	require.NoError(t, err)

	return &domain.ModelArtifact{
		ID:           1,
		CreatedAt:    time.Now(),
		Payload:      payload,
		ModelVersion: "1.0",
		FeatureNames: pipeline.FeatureNames,
	}
}

func validInput() domain.StudentFeatures {
	return domain.StudentFeatures{
		UniversityGPA: 8.2, FieldOfStudy: "Computer Science", Gender: "Male",
		InternshipsCompleted: 2, SoftSkillsScore: 7.5, NetworkingScore: 8.0,
	}
}

func TestEnsureLoadedCachesPipeline(t *testing.T) {
	modelRepo := new(testutil.MockModelRepo)
	predictionRepo := new(testutil.MockPredictionRepo)
	p := NewPredictor(modelRepo, predictionRepo)

	modelRepo.On("GetCurrent", mock.Anything).Return(trainedArtifact(t), nil).Once()

	first, err := p.EnsureLoaded(context.Background())
	require.NoError(t, err)
	second, err := p.EnsureLoaded(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	modelRepo.AssertNumberOfCalls(t, "GetCurrent", 1)
}

func TestEnsureLoadedSingleLoadUnderConcurrency(t *testing.T) {
	modelRepo := new(testutil.MockModelRepo)
	predictionRepo := new(testutil.MockPredictionRepo)
	p := NewPredictor(modelRepo, predictionRepo)

	modelRepo.On("GetCurrent", mock.Anything).Return(trainedArtifact(t), nil).Once()

	const callers = 16
	pipelines := make([]*ml.Pipeline, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			pipeline, err := p.EnsureLoaded(context.Background())
			assert.NoError(t, err)
			pipelines[i] = pipeline
		}(i)
	}
	wg.Wait()

	modelRepo.AssertNumberOfCalls(t, "GetCurrent", 1)
	for i := 1; i < callers; i++ {
		assert.Same(t, pipelines[0], pipelines[i])
	}
}

func TestEnsureLoadedRetriesAfterFailure(t *testing.T) {
	modelRepo := new(testutil.MockModelRepo)
	predictionRepo := new(testutil.MockPredictionRepo)
	p := NewPredictor(modelRepo, predictionRepo)

	modelRepo.On("GetCurrent", mock.Anything).Return(nil, domain.ErrStoreUnavailable).Once()
	modelRepo.On("GetCurrent", mock.Anything).Return(trainedArtifact(t), nil).Once()

	_, err := p.EnsureLoaded(context.Background())
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)

	pipeline, err := p.EnsureLoaded(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, pipeline)
	modelRepo.AssertNumberOfCalls(t, "GetCurrent", 2)
}

func TestEnsureLoadedNoArtifact(t *testing.T) {
	modelRepo := new(testutil.MockModelRepo)
	predictionRepo := new(testutil.MockPredictionRepo)
	p := NewPredictor(modelRepo, predictionRepo)

	modelRepo.On("GetCurrent", mock.Anything).Return(nil, domain.ErrModelNotFound)

	_, err := p.EnsureLoaded(context.Background())
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
	assert.NotErrorIs(t, err, domain.ErrArtifactDecode)
}

func TestEnsureLoadedDecodeFailure(t *testing.T) {
	modelRepo := new(testutil.MockModelRepo)
	predictionRepo := new(testutil.MockPredictionRepo)
	p := NewPredictor(modelRepo, predictionRepo)

	artifact := &domain.ModelArtifact{ID: 1, Payload: "definitely not a pipeline"}
	modelRepo.On("GetCurrent", mock.Anything).Return(artifact, nil)

	_, err := p.EnsureLoaded(context.Background())
	assert.ErrorIs(t, err, domain.ErrArtifactDecode)
}

func TestPredictReturnsResultAndSavesRecord(t *testing.T) {
	modelRepo := new(testutil.MockModelRepo)
	predictionRepo := new(testutil.MockPredictionRepo)
	p := NewPredictor(modelRepo, predictionRepo)

	modelRepo.On("GetCurrent", mock.Anything).Return(trainedArtifact(t), nil).Once()
	predictionRepo.On("Save", mock.Anything, mock.Anything, mock.AnythingOfType("int"), mock.AnythingOfType("float64")).Return(int64(1), nil).Once()

	result, err := p.Predict(context.Background(), validInput())
	require.NoError(t, err)

	assert.Contains(t, []int{0, 1}, result.PredictedLabel)
	assert.GreaterOrEqual(t, result.Probability, 0.0)
	assert.LessOrEqual(t, result.Probability, 1.0)
	assert.Equal(t, math.Abs(result.Probability-0.5)*2, result.Confidence)

	predictionRepo.AssertCalled(t, "Save", mock.Anything, validInput(), result.PredictedLabel, result.Probability)
}

func TestPredictSucceedsWhenAuditWriteFails(t *testing.T) {
	modelRepo := new(testutil.MockModelRepo)
	predictionRepo := new(testutil.MockPredictionRepo)
	p := NewPredictor(modelRepo, predictionRepo)

	modelRepo.On("GetCurrent", mock.Anything).Return(trainedArtifact(t), nil).Once()
	predictionRepo.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(int64(0), errors.New("connection refused"))

	result, err := p.Predict(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestPredictIsDeterministicForFixedArtifact(t *testing.T) {
	modelRepo := new(testutil.MockModelRepo)
	predictionRepo := new(testutil.MockPredictionRepo)
	p := NewPredictor(modelRepo, predictionRepo)

	modelRepo.On("GetCurrent", mock.Anything).Return(trainedArtifact(t), nil).Once()
	predictionRepo.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)

	first, err := p.Predict(context.Background(), validInput())
	require.NoError(t, err)
	second, err := p.Predict(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestConfidence(t *testing.T) {
	cases := []struct {
		probability float64
		want        float64
	}{
		{0.5, 0},
		{0.0, 1},
		{1.0, 1},
		{0.75, 0.5},
		{0.25, 0.5},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, Confidence(tc.probability), 1e-12)
	}

	// Monotone in distance from the boundary.
	assert.Less(t, Confidence(0.6), Confidence(0.7))
	assert.Less(t, Confidence(0.4), Confidence(0.3))
}
