package service

import (
	"context"
	"errors"

	"github.com/yourorg/forecast-service/internal/forecast"
	"github.com/yourorg/forecast-service/internal/model"
)

// ErrModelNotFound means predict was called for a ticker that has no
// completed training run.
var ErrModelNotFound = errors.New("no trained model for ticker")

// HistorySource resolves a requested data source and serves price
// history. Implemented by datasource.Resolver.
type HistorySource interface {
	History(ctx context.Context, ticker string, years int, source model.DataSource, localDir string) ([]model.Bar, model.DataSource, error)
	Symbols(ctx context.Context, source model.DataSource, localDir string) ([]string, model.DataSource, error)
}

// ArtifactStore persists trained models. Implemented by artifact.Storage.
type ArtifactStore interface {
	Save(ctx context.Context, a *forecast.Artifact) (string, error)
	Load(ctx context.Context, path string) (*forecast.Artifact, error)
}

// RunRegistry records training runs. Implemented by
// repository.TrainingRunRepository.
type RunRegistry interface {
	Insert(ctx context.Context, run *model.TrainingRun) (int, error)
	GetLatestByTicker(ctx context.Context, ticker string) (*model.TrainingRun, error)
	List(ctx context.Context, limit int) ([]model.TrainingRun, error)
}

// EventPublisher emits training lifecycle events. Implemented by
// kafka.Producer.
type EventPublisher interface {
	PublishTrainingCompleted(ctx context.Context, topic string, event model.TrainingCompletedEvent) error
}
