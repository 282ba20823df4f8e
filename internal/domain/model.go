package domain

import "time"

// FeatureOrder is the exact column order the pipeline was trained on.
// The inference engine reorders incoming features to match it.
var FeatureOrder = []string{
	"University_GPA",
	"Field_of_Study",
	"Gender",
	"Internships_Completed",
	"Soft_Skills_Score",
	"Networking_Score",
}

// ModelArtifact is one stored row of the trained pipeline. Payload is an
// opaque base64-encoded blob; the ml package owns the encoding.
type ModelArtifact struct {
	ID           int64     `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Payload      string    `json:"-"`
	ModelVersion string    `json:"model_version"`
	FeatureNames []string  `json:"feature_names"`
}

type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// ROCCurve holds parallel fpr/tpr sequences of equal length.
type ROCCurve struct {
	FPR []float64 `json:"fpr"`
	TPR []float64 `json:"tpr"`
}

// MetricsSnapshot is one stored evaluation of the trained pipeline.
// The most recently created row is the current snapshot.
type MetricsSnapshot struct {
	ID                 int64               `json:"id"`
	CreatedAt          time.Time           `json:"created_at"`
	Accuracy           float64             `json:"accuracy"`
	Precision          float64             `json:"precision"`
	Recall             float64             `json:"recall"`
	F1Score            float64             `json:"f1_score"`
	ROCAUC             float64             `json:"roc_auc"`
	FeatureImportances []FeatureImportance `json:"feature_importances"`
	ROCCurve           ROCCurve            `json:"roc_curve"`
}
