package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"career-predictor-service/internal/domain"
)

type metricsRepo struct {
	pool *pgxpool.Pool
}

func NewMetricsRepository(pool *pgxpool.Pool) domain.MetricsRepository {
	return &metricsRepo{pool: pool}
}

func (r *metricsRepo) GetCurrent(ctx context.Context) (*domain.MetricsSnapshot, error) {
	query := `
		SELECT id, created_at, accuracy, precision_score, recall, f1_score,
			   roc_auc, feature_importances, roc_curve
		FROM model_metrics
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	snapshot := &domain.MetricsSnapshot{}
	var importancesJSON, curveJSON []byte
	err := r.pool.QueryRow(ctx, query).Scan(
		&snapshot.ID, &snapshot.CreatedAt,
		&snapshot.Accuracy, &snapshot.Precision, &snapshot.Recall,
		&snapshot.F1Score, &snapshot.ROCAUC,
		&importancesJSON, &curveJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMetricsNotFound
		}
		return nil, storeErr("get current metrics", err)
	}

	if err := json.Unmarshal(importancesJSON, &snapshot.FeatureImportances); err != nil {
		return nil, fmt.Errorf("unmarshal feature importances: %w", err)
	}
	if err := json.Unmarshal(curveJSON, &snapshot.ROCCurve); err != nil {
		return nil, fmt.Errorf("unmarshal roc curve: %w", err)
	}
	return snapshot, nil
}

func (r *metricsRepo) Save(ctx context.Context, snapshot *domain.MetricsSnapshot) (int64, error) {
	importancesJSON, err := json.Marshal(snapshot.FeatureImportances)
	if err != nil {
		return 0, fmt.Errorf("marshal feature importances: %w", err)
	}
	curveJSON, err := json.Marshal(snapshot.ROCCurve)
	if err != nil {
		return 0, fmt.Errorf("marshal roc curve: %w", err)
	}

	query := `
		INSERT INTO model_metrics
			(accuracy, precision_score, recall, f1_score, roc_auc,
			 feature_importances, roc_curve)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err = r.pool.QueryRow(ctx, query,
		snapshot.Accuracy, snapshot.Precision, snapshot.Recall,
		snapshot.F1Score, snapshot.ROCAUC, importancesJSON, curveJSON,
	).Scan(&id)
	if err != nil {
		return 0, saveErr("save metrics", err)
	}
	return id, nil
}
