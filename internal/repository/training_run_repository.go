package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/model"
)

// TrainingRunRepository handles database operations for training runs
type TrainingRunRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewTrainingRunRepository creates a new training run repository
func NewTrainingRunRepository(db *sqlx.DB, logger *zap.Logger) *TrainingRunRepository {
	return &TrainingRunRepository{
		db:     db,
		logger: logger,
	}
}

// Insert records a completed training run and returns its ID
func (r *TrainingRunRepository) Insert(ctx context.Context, run *model.TrainingRun) (int, error) {
	query := `
		INSERT INTO training_runs (
			ticker, source, transform, artifact_path,
			input_len, pred_len, epochs, batch_size, learning_rate,
			train_loss, val_loss, val_rmse, direction_accuracy,
			train_samples, val_samples, trained_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9,
			$10, $11, $12, $13,
			$14, $15, $16
		)
		RETURNING id
	`

	var id int
	err := r.db.GetContext(
		ctx,
		&id,
		query,
		run.Ticker,
		run.Source,
		run.Transform,
		run.ArtifactPath,
		run.InputLen,
		run.PredLen,
		run.Epochs,
		run.BatchSize,
		run.LearningRate,
		run.TrainLoss,
		run.ValLoss,
		run.ValRMSE,
		run.DirectionAccuracy,
		run.TrainSamples,
		run.ValSamples,
		run.TrainedAt,
	)

	if err != nil {
		r.logger.Error("Failed to insert training run",
			zap.Error(err),
			zap.String("ticker", run.Ticker))
		return 0, err
	}

	return id, nil
}

// GetLatestByTicker returns the most recent training run for a ticker
func (r *TrainingRunRepository) GetLatestByTicker(ctx context.Context, ticker string) (*model.TrainingRun, error) {
	query := `
		SELECT
			id, ticker, source, transform, artifact_path,
			input_len, pred_len, epochs, batch_size, learning_rate,
			train_loss, val_loss, val_rmse, direction_accuracy,
			train_samples, val_samples, trained_at
		FROM training_runs
		WHERE UPPER(ticker) = UPPER($1)
		ORDER BY trained_at DESC
		LIMIT 1
	`

	var run model.TrainingRun
	err := r.db.GetContext(ctx, &run, query, ticker)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get latest training run",
			zap.Error(err),
			zap.String("ticker", ticker))
		return nil, err
	}

	return &run, nil
}

// List returns the most recent training runs, newest first
func (r *TrainingRunRepository) List(ctx context.Context, limit int) ([]model.TrainingRun, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	query := `
		SELECT
			id, ticker, source, transform, artifact_path,
			input_len, pred_len, epochs, batch_size, learning_rate,
			train_loss, val_loss, val_rmse, direction_accuracy,
			train_samples, val_samples, trained_at
		FROM training_runs
		ORDER BY trained_at DESC
		LIMIT $1
	`

	var runs []model.TrainingRun
	err := r.db.SelectContext(ctx, &runs, query, limit)
	if err != nil {
		r.logger.Error("Failed to list training runs", zap.Error(err))
		return nil, err
	}

	return runs, nil
}
