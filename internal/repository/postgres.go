package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"career-predictor-service/internal/domain"
)

// Migrate bootstraps the schema. The training and serving processes share
// these tables; rows are append-only and the newest row is the current one.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS trained_pipeline (
			id            BIGSERIAL PRIMARY KEY,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			payload       TEXT NOT NULL,
			model_version TEXT NOT NULL DEFAULT '1.0',
			feature_names JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS model_metrics (
			id                  BIGSERIAL PRIMARY KEY,
			created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			accuracy            FLOAT8 NOT NULL,
			precision_score     FLOAT8 NOT NULL,
			recall              FLOAT8 NOT NULL,
			f1_score            FLOAT8 NOT NULL,
			roc_auc             FLOAT8 NOT NULL,
			feature_importances JSONB NOT NULL,
			roc_curve           JSONB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS predictions (
			id              BIGSERIAL PRIMARY KEY,
			created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			input           JSONB NOT NULL,
			predicted_label INT NOT NULL,
			probability     FLOAT8 NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions (created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}
	return nil
}

// storeErr classifies a read-path storage failure as ErrStoreUnavailable while
// keeping the cause in the message.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %s", op, domain.ErrStoreUnavailable, err)
}

// saveErr classifies a write-path storage failure as ErrSaveFailed.
func saveErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %s", op, domain.ErrSaveFailed, err)
}
