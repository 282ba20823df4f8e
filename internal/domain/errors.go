package domain

import "errors"

var (
	ErrModelNotFound    = errors.New("trained model not found")
	ErrMetricsNotFound  = errors.New("model metrics not found")
	ErrStoreUnavailable = errors.New("store temporarily unavailable")
	ErrArtifactDecode   = errors.New("model artifact cannot be decoded")
	ErrInferenceFailed  = errors.New("model inference failed")
	ErrSaveFailed       = errors.New("record could not be saved")
)
