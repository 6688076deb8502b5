package artifact

import (
	"context"

	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/config"
	"github.com/yourorg/forecast-service/internal/forecast"
)

// Storage defines the interface for model artifact persistence
type Storage interface {
	// Save writes a trained model and returns the path it can be
	// loaded from later.
	Save(ctx context.Context, a *forecast.Artifact) (string, error)

	// Load reads a model artifact back from a path returned by Save.
	Load(ctx context.Context, path string) (*forecast.Artifact, error)
}

// NewStorage creates a storage implementation based on the configuration
func NewStorage(cfg *config.ArtifactConfig, logger *zap.Logger) (Storage, error) {
	switch cfg.Type {
	case "s3":
		return NewS3Storage(&cfg.S3, logger)
	case "local":
		return NewLocalStorage(&cfg.Local, logger)
	default:
		// Default to local storage
		return NewLocalStorage(&cfg.Local, logger)
	}
}
