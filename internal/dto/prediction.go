package dto

import "career-predictor-service/internal/domain"

// PredictRequest carries one student's features. Numeric fields are pointers
// so that a legitimate zero passes the required check.
type PredictRequest struct {
	UniversityGPA        *float64 `json:"University_GPA" binding:"required,gte=0,lte=10"`
	FieldOfStudy         string   `json:"Field_of_Study" binding:"required,min=1"`
	Gender               string   `json:"Gender" binding:"required,min=1"`
	InternshipsCompleted *int     `json:"Internships_Completed" binding:"required,gte=0"`
	SoftSkillsScore      *float64 `json:"Soft_Skills_Score" binding:"required,gte=0,lte=10"`
	NetworkingScore      *float64 `json:"Networking_Score" binding:"required,gte=0,lte=10"`
}

type PredictionResponse struct {
	PredictedLabel int     `json:"predicted_label"`
	Probability    float64 `json:"probability"`
	Confidence     float64 `json:"confidence"`
}

type MetricsResponse struct {
	Accuracy           float64                    `json:"accuracy"`
	Precision          float64                    `json:"precision"`
	Recall             float64                    `json:"recall"`
	F1Score            float64                    `json:"f1_score"`
	ROCAUC             float64                    `json:"roc_auc"`
	FeatureImportances []domain.FeatureImportance `json:"feature_importances"`
	ROCCurve           domain.ROCCurve            `json:"roc_curve"`
}

type PredictionRecordResponse struct {
	ID             int64                  `json:"id"`
	Timestamp      string                 `json:"timestamp"`
	Input          domain.StudentFeatures `json:"input"`
	PredictedLabel int                    `json:"predicted_label"`
	Probability    float64                `json:"probability"`
}
