package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"career-predictor-service/internal/domain"
)

type predictionRepo struct {
	pool *pgxpool.Pool
}

func NewPredictionRepository(pool *pgxpool.Pool) domain.PredictionRepository {
	return &predictionRepo{pool: pool}
}

func (r *predictionRepo) Save(ctx context.Context, input domain.StudentFeatures, predictedLabel int, probability float64) (int64, error) {
	inputJSON, err := json.Marshal(input)
	if err != nil {
		return 0, fmt.Errorf("marshal prediction input: %w", err)
	}

	query := `
		INSERT INTO predictions (input, predicted_label, probability)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	if err := r.pool.QueryRow(ctx, query, inputJSON, predictedLabel, probability).Scan(&id); err != nil {
		return 0, saveErr("save prediction", err)
	}
	return id, nil
}

func (r *predictionRepo) List(ctx context.Context, limit int) ([]*domain.PredictionRecord, error) {
	query := `
		SELECT id, created_at, input, predicted_label, probability
		FROM predictions
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, storeErr("list predictions", err)
	}
	defer rows.Close()

	records := make([]*domain.PredictionRecord, 0, limit)
	for rows.Next() {
		record := &domain.PredictionRecord{}
		var inputJSON []byte
		err := rows.Scan(&record.ID, &record.CreatedAt, &inputJSON,
			&record.PredictedLabel, &record.Probability)
		if err != nil {
			return nil, storeErr("scan prediction row", err)
		}
		if err := json.Unmarshal(inputJSON, &record.Input); err != nil {
			return nil, fmt.Errorf("unmarshal prediction input: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate prediction rows", err)
	}

	return records, nil
}
