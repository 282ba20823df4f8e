package ml

import (
	"errors"
	"sort"

	"career-predictor-service/internal/domain"
)

// Evaluation holds hold-out metrics for a trained pipeline.
type Evaluation struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1Score   float64
	ROCAUC    float64
	Curve     domain.ROCCurve
}

// Evaluate scores predictions against true binary labels. Probabilities are
// positive-class probabilities and drive the ROC-AUC and ROC curve.
func Evaluate(labels, predicted []int, probabilities []float64) (*Evaluation, error) {
	n := len(labels)
	if n == 0 {
		return nil, errors.New("no evaluation samples")
	}
	if len(predicted) != n || len(probabilities) != n {
		return nil, errors.New("labels, predictions and probabilities size mismatch")
	}

	var tp, tn, fp, fn int
	for i := 0; i < n; i++ {
		switch {
		case labels[i] == 1 && predicted[i] == 1:
			tp++
		case labels[i] == 0 && predicted[i] == 0:
			tn++
		case labels[i] == 0 && predicted[i] == 1:
			fp++
		default:
			fn++
		}
	}

	eval := &Evaluation{
		Accuracy: float64(tp+tn) / float64(n),
	}
	if tp+fp > 0 {
		eval.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		eval.Recall = float64(tp) / float64(tp+fn)
	}
	if eval.Precision+eval.Recall > 0 {
		eval.F1Score = 2 * eval.Precision * eval.Recall / (eval.Precision + eval.Recall)
	}

	eval.ROCAUC = rocAUC(labels, probabilities)
	eval.Curve = rocCurve(labels, probabilities)
	return eval, nil
}

// rocAUC computes the area under the ROC curve with the rank-sum method,
// averaging ranks across tied probabilities.
func rocAUC(labels []int, probabilities []float64) float64 {
	n := len(labels)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return probabilities[idx[a]] < probabilities[idx[b]]
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j < n && probabilities[idx[j]] == probabilities[idx[i]] {
			j++
		}
		avg := float64(i+j+1) / 2 // ranks are 1-based
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		i = j
	}

	var nPos, nNeg int
	var rankSum float64
	for i, label := range labels {
		if label == 1 {
			nPos++
			rankSum += ranks[i]
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		return 0
	}
	return (rankSum - float64(nPos)*float64(nPos+1)/2) / (float64(nPos) * float64(nNeg))
}

// rocCurve sweeps the decision threshold over the distinct predicted
// probabilities, from (0,0) to (1,1).
func rocCurve(labels []int, probabilities []float64) domain.ROCCurve {
	n := len(labels)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return probabilities[idx[a]] > probabilities[idx[b]]
	})

	var nPos, nNeg int
	for _, label := range labels {
		if label == 1 {
			nPos++
		} else {
			nNeg++
		}
	}

	curve := domain.ROCCurve{FPR: []float64{0}, TPR: []float64{0}}
	if nPos == 0 || nNeg == 0 {
		curve.FPR = append(curve.FPR, 1)
		curve.TPR = append(curve.TPR, 1)
		return curve
	}

	var tp, fp int
	for i := 0; i < n; {
		j := i
		for j < n && probabilities[idx[j]] == probabilities[idx[i]] {
			if labels[idx[j]] == 1 {
				tp++
			} else {
				fp++
			}
			j++
		}
		curve.FPR = append(curve.FPR, float64(fp)/float64(nNeg))
		curve.TPR = append(curve.TPR, float64(tp)/float64(nPos))
		i = j
	}
	return curve
}
