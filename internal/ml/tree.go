package ml

import (
	"errors"
	"math/rand"
	"sort"
)

// TreeNode is one node of a decision tree stored in a flattened slice.
// Leaf nodes carry the fraction of positive training samples that reached them.
type TreeNode struct {
	FeatureIdx  int     `json:"feature_idx"`
	Threshold   float64 `json:"threshold"`
	LeftChild   int     `json:"left_child"`
	RightChild  int     `json:"right_child"`
	PosFraction float64 `json:"pos_fraction"`
	IsLeaf      bool    `json:"is_leaf"`
}

type DecisionTree struct {
	Nodes []TreeNode
}

type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	featuresPerNode int
	rng             *rand.Rand
	importances     []float64
}

func growTree(features [][]float64, labels []int, p *treeParams) DecisionTree {
	dt := DecisionTree{}
	buildNode(features, labels, 0, p, &dt.Nodes)
	return dt
}

// PredictProba walks the tree and returns the positive-class fraction of the
// leaf the sample lands in.
func (dt *DecisionTree) PredictProba(features []float64) (float64, error) {
	if len(dt.Nodes) == 0 {
		return 0, errors.New("tree has no nodes")
	}
	idx := 0
	for {
		node := dt.Nodes[idx]
		if node.IsLeaf {
			return node.PosFraction, nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(dt.Nodes) {
			return 0, errors.New("invalid tree state")
		}
	}
}

// buildNode appends the subtree covering this sample set to nodes and returns
// the absolute index of its root. Child links are patched after both subtrees
// are placed, so every index in the finished slice is absolute.
func buildNode(features [][]float64, labels []int, depth int, p *treeParams, nodes *[]TreeNode) int {
	appendLeaf := func() int {
		idx := len(*nodes)
		*nodes = append(*nodes, TreeNode{
			FeatureIdx:  -1,
			LeftChild:   -1,
			RightChild:  -1,
			PosFraction: positiveFraction(labels),
			IsLeaf:      true,
		})
		return idx
	}

	if depth >= p.maxDepth || len(labels) < p.minSamplesSplit || isPure(labels) {
		return appendLeaf()
	}

	bestFeature, threshold, gain, ok := findBestSplit(features, labels, p)
	if !ok {
		return appendLeaf()
	}

	leftFeatures, leftLabels, rightFeatures, rightLabels := splitData(features, labels, bestFeature, threshold)
	if len(leftLabels) == 0 || len(rightLabels) == 0 {
		return appendLeaf()
	}

	if p.importances != nil {
		p.importances[bestFeature] += gain * float64(len(labels))
	}

	idx := len(*nodes)
	*nodes = append(*nodes, TreeNode{
		FeatureIdx:  bestFeature,
		Threshold:   threshold,
		PosFraction: positiveFraction(labels),
	})

	left := buildNode(leftFeatures, leftLabels, depth+1, p, nodes)
	right := buildNode(rightFeatures, rightLabels, depth+1, p, nodes)
	(*nodes)[idx].LeftChild = left
	(*nodes)[idx].RightChild = right
	return idx
}

func findBestSplit(features [][]float64, labels []int, p *treeParams) (int, float64, float64, bool) {
	featureCount := len(features[0])
	candidates := sampleFeatures(featureCount, p.featuresPerNode, p.rng)

	parentGini := gini(labels)
	bestFeature := -1
	bestThreshold := 0.0
	bestGain := 0.0

	for _, featureIdx := range candidates {
		values := make([]float64, len(features))
		for i := range features {
			values[i] = features[i][featureIdx]
		}
		threshold := median(values)
		leftLabels, rightLabels := splitLabels(features, labels, featureIdx, threshold)
		if len(leftLabels) == 0 || len(rightLabels) == 0 {
			continue
		}
		gain := parentGini - weightedGini(leftLabels, rightLabels)
		if gain > bestGain {
			bestGain = gain
			bestFeature = featureIdx
			bestThreshold = threshold
		}
	}
	if bestFeature == -1 {
		return -1, 0, 0, false
	}
	return bestFeature, bestThreshold, bestGain, true
}

func sampleFeatures(total, count int, rng *rand.Rand) []int {
	if count <= 0 || count >= total {
		all := make([]int, total)
		for i := range all {
			all[i] = i
		}
		return all
	}
	perm := rng.Perm(total)
	picked := append([]int(nil), perm[:count]...)
	sort.Ints(picked)
	return picked
}

func splitData(features [][]float64, labels []int, featureIdx int, threshold float64) ([][]float64, []int, [][]float64, []int) {
	leftFeatures := make([][]float64, 0)
	leftLabels := make([]int, 0)
	rightFeatures := make([][]float64, 0)
	rightLabels := make([]int, 0)
	for i, feature := range features {
		if feature[featureIdx] <= threshold {
			leftFeatures = append(leftFeatures, feature)
			leftLabels = append(leftLabels, labels[i])
		} else {
			rightFeatures = append(rightFeatures, feature)
			rightLabels = append(rightLabels, labels[i])
		}
	}
	return leftFeatures, leftLabels, rightFeatures, rightLabels
}

func splitLabels(features [][]float64, labels []int, featureIdx int, threshold float64) ([]int, []int) {
	leftLabels := make([]int, 0)
	rightLabels := make([]int, 0)
	for i, feature := range features {
		if feature[featureIdx] <= threshold {
			leftLabels = append(leftLabels, labels[i])
		} else {
			rightLabels = append(rightLabels, labels[i])
		}
	}
	return leftLabels, rightLabels
}

func weightedGini(leftLabels, rightLabels []int) float64 {
	leftWeight := float64(len(leftLabels))
	rightWeight := float64(len(rightLabels))
	total := leftWeight + rightWeight
	return (leftWeight/total)*gini(leftLabels) + (rightWeight/total)*gini(rightLabels)
}

func gini(labels []int) float64 {
	if len(labels) == 0 {
		return 0
	}
	pos := positiveFraction(labels)
	return 1 - pos*pos - (1-pos)*(1-pos)
}

func positiveFraction(labels []int) float64 {
	if len(labels) == 0 {
		return 0
	}
	pos := 0
	for _, label := range labels {
		if label == 1 {
			pos++
		}
	}
	return float64(pos) / float64(len(labels))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func isPure(labels []int) bool {
	if len(labels) == 0 {
		return true
	}
	first := labels[0]
	for _, label := range labels[1:] {
		if label != first {
			return false
		}
	}
	return true
}
