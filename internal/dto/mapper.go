package dto

import (
	"time"

	"career-predictor-service/internal/domain"
)

const timeFormat = time.RFC3339

func ToStudentFeatures(req PredictRequest) domain.StudentFeatures {
	return domain.StudentFeatures{
		UniversityGPA:        *req.UniversityGPA,
		FieldOfStudy:         req.FieldOfStudy,
		Gender:               req.Gender,
		InternshipsCompleted: *req.InternshipsCompleted,
		SoftSkillsScore:      *req.SoftSkillsScore,
		NetworkingScore:      *req.NetworkingScore,
	}
}

func ToPredictionResponse(r *domain.PredictionResult) PredictionResponse {
	return PredictionResponse{
		PredictedLabel: r.PredictedLabel,
		Probability:    r.Probability,
		Confidence:     r.Confidence,
	}
}

func ToMetricsResponse(s *domain.MetricsSnapshot) MetricsResponse {
	resp := MetricsResponse{
		Accuracy:           s.Accuracy,
		Precision:          s.Precision,
		Recall:             s.Recall,
		F1Score:            s.F1Score,
		ROCAUC:             s.ROCAUC,
		FeatureImportances: s.FeatureImportances,
		ROCCurve:           s.ROCCurve,
	}
	if resp.FeatureImportances == nil {
		resp.FeatureImportances = []domain.FeatureImportance{}
	}
	if resp.ROCCurve.FPR == nil {
		resp.ROCCurve.FPR = []float64{}
	}
	if resp.ROCCurve.TPR == nil {
		resp.ROCCurve.TPR = []float64{}
	}
	return resp
}

func ToPredictionRecordResponse(r *domain.PredictionRecord) PredictionRecordResponse {
	return PredictionRecordResponse{
		ID:             r.ID,
		Timestamp:      r.CreatedAt.Format(timeFormat),
		Input:          r.Input,
		PredictedLabel: r.PredictedLabel,
		Probability:    r.Probability,
	}
}
