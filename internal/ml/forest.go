package ml

import (
	"errors"
	"math"
	"math/rand"
)

// ForestConfig controls training. The defaults mirror the offline trainer the
// stored artifacts come from; Seed makes training fully deterministic.
type ForestConfig struct {
	NumTrees        int
	MaxDepth        int
	MinSamplesSplit int
	Seed            int64
}

func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		NumTrees:        200,
		MaxDepth:        10,
		MinSamplesSplit: 5,
		Seed:            42,
	}
}

// Forest is a bagged ensemble of decision trees for binary classification.
type Forest struct {
	Trees       []DecisionTree
	NumFeatures int
	Importances []float64
}

func TrainForest(features [][]float64, labels []int, cfg ForestConfig) (*Forest, error) {
	if len(features) == 0 || len(labels) == 0 {
		return nil, errors.New("features or labels empty")
	}
	if len(features) != len(labels) {
		return nil, errors.New("features and labels size mismatch")
	}
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = 1
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 3
	}
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}

	featureCount := len(features[0])
	rng := rand.New(rand.NewSource(cfg.Seed))
	importances := make([]float64, featureCount)

	forest := &Forest{
		Trees:       make([]DecisionTree, 0, cfg.NumTrees),
		NumFeatures: featureCount,
	}

	perNode := int(math.Ceil(math.Sqrt(float64(featureCount))))
	for t := 0; t < cfg.NumTrees; t++ {
		sampleX, sampleY := bootstrap(features, labels, rng)
		params := &treeParams{
			maxDepth:        cfg.MaxDepth,
			minSamplesSplit: cfg.MinSamplesSplit,
			featuresPerNode: perNode,
			rng:             rng,
			importances:     importances,
		}
		forest.Trees = append(forest.Trees, growTree(sampleX, sampleY, params))
	}

	forest.Importances = normalize(importances)
	return forest, nil
}

// PredictProba returns the probability mass assigned to the positive class,
// averaged over all trees.
func (f *Forest) PredictProba(features []float64) (float64, error) {
	if len(f.Trees) == 0 {
		return 0, errors.New("forest not trained")
	}
	if len(features) != f.NumFeatures {
		return 0, errors.New("feature vector length mismatch")
	}
	sum := 0.0
	for i := range f.Trees {
		p, err := f.Trees[i].PredictProba(features)
		if err != nil {
			return 0, err
		}
		sum += p
	}
	return sum / float64(len(f.Trees)), nil
}

// Predict returns the discrete class label. Classes are ordered
// negative-then-positive; a tie at 0.5 resolves to the negative class.
func (f *Forest) Predict(features []float64) (int, error) {
	proba, err := f.PredictProba(features)
	if err != nil {
		return 0, err
	}
	if proba > 0.5 {
		return 1, nil
	}
	return 0, nil
}

func bootstrap(features [][]float64, labels []int, rng *rand.Rand) ([][]float64, []int) {
	n := len(features)
	sampleX := make([][]float64, n)
	sampleY := make([]int, n)
	for i := 0; i < n; i++ {
		j := rng.Intn(n)
		sampleX[i] = features[j]
		sampleY[i] = labels[j]
	}
	return sampleX, sampleY
}

func normalize(values []float64) []float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	out := make([]float64, len(values))
	if total == 0 {
		return out
	}
	for i, v := range values {
		out[i] = v / total
	}
	return out
}
