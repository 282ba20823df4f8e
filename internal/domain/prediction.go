package domain

import "time"

// StudentFeatures is the validated input for one prediction. Range checks
// happen at the HTTP boundary; the core trusts these values.
type StudentFeatures struct {
	UniversityGPA        float64 `json:"University_GPA"`
	FieldOfStudy         string  `json:"Field_of_Study"`
	Gender               string  `json:"Gender"`
	InternshipsCompleted int     `json:"Internships_Completed"`
	SoftSkillsScore      float64 `json:"Soft_Skills_Score"`
	NetworkingScore      float64 `json:"Networking_Score"`
}

// PredictionResult is the outcome of one inference call.
// Confidence is |probability-0.5|*2: distance from the decision boundary,
// not a statistical confidence interval.
type PredictionResult struct {
	PredictedLabel int     `json:"predicted_label"`
	Probability    float64 `json:"probability"`
	Confidence     float64 `json:"confidence"`
}

// PredictionRecord is one row of the append-only prediction audit log.
type PredictionRecord struct {
	ID             int64           `json:"id"`
	CreatedAt      time.Time       `json:"timestamp"`
	Input          StudentFeatures `json:"input"`
	PredictedLabel int             `json:"predicted_label"`
	Probability    float64         `json:"probability"`
}
