package model

import "time"

// TrainingRun is a persisted record of a completed training.
type TrainingRun struct {
	ID                int        `json:"id" db:"id"`
	Ticker            string     `json:"ticker" db:"ticker"`
	Source            DataSource `json:"source" db:"source"`
	Transform         string     `json:"transform" db:"transform"`
	ArtifactPath      string     `json:"artifact_path" db:"artifact_path"`
	InputLen          int        `json:"input_len" db:"input_len"`
	PredLen           int        `json:"pred_len" db:"pred_len"`
	Epochs            int        `json:"epochs" db:"epochs"`
	BatchSize         int        `json:"batch_size" db:"batch_size"`
	LearningRate      float64    `json:"learning_rate" db:"learning_rate"`
	TrainLoss         float64    `json:"train_loss" db:"train_loss"`
	ValLoss           float64    `json:"val_loss" db:"val_loss"`
	ValRMSE           float64    `json:"val_rmse" db:"val_rmse"`
	DirectionAccuracy float64    `json:"direction_accuracy" db:"direction_accuracy"`
	TrainSamples      int        `json:"train_samples" db:"train_samples"`
	ValSamples        int        `json:"val_samples" db:"val_samples"`
	TrainedAt         time.Time  `json:"trained_at" db:"trained_at"`
}

// TrainingCompletedEvent is published to Kafka after a successful run.
type TrainingCompletedEvent struct {
	RunID             int        `json:"run_id"`
	Ticker            string     `json:"ticker"`
	Source            DataSource `json:"source"`
	ArtifactPath      string     `json:"artifact_path"`
	ValRMSE           float64    `json:"val_rmse"`
	DirectionAccuracy float64    `json:"direction_accuracy"`
	TrainedAt         time.Time  `json:"trained_at"`
}
