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

type modelRepo struct {
	pool *pgxpool.Pool
}

func NewModelRepository(pool *pgxpool.Pool) domain.ModelRepository {
	return &modelRepo{pool: pool}
}

func (r *modelRepo) GetCurrent(ctx context.Context) (*domain.ModelArtifact, error) {
	query := `
		SELECT id, created_at, payload, model_version, feature_names
		FROM trained_pipeline
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	artifact := &domain.ModelArtifact{}
	var namesJSON []byte
	err := r.pool.QueryRow(ctx, query).Scan(
		&artifact.ID, &artifact.CreatedAt, &artifact.Payload,
		&artifact.ModelVersion, &namesJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrModelNotFound
		}
		return nil, storeErr("get current model", err)
	}

	if err := json.Unmarshal(namesJSON, &artifact.FeatureNames); err != nil {
		return nil, fmt.Errorf("unmarshal feature names: %w", err)
	}
	return artifact, nil
}

func (r *modelRepo) Save(ctx context.Context, payload string, featureNames []string) (int64, error) {
	namesJSON, err := json.Marshal(featureNames)
	if err != nil {
		return 0, fmt.Errorf("marshal feature names: %w", err)
	}

	query := `
		INSERT INTO trained_pipeline (payload, feature_names)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	if err := r.pool.QueryRow(ctx, query, payload, namesJSON).Scan(&id); err != nil {
		return 0, saveErr("save model", err)
	}
	return id, nil
}
