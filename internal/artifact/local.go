package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/config"
	"github.com/yourorg/forecast-service/internal/forecast"
)

// LocalStorage implements the Storage interface for the local filesystem
type LocalStorage struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalStorage creates a new LocalStorage
func NewLocalStorage(cfg *config.LocalArtifactConfig, logger *zap.Logger) (*LocalStorage, error) {
	// Create base directory if it doesn't exist
	if err := os.MkdirAll(cfg.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}

	return &LocalStorage{
		basePath: cfg.BasePath,
		logger:   logger,
	}, nil
}

// Save writes the artifact as <base>/<TICKER>/<uuid>.json
func (s *LocalStorage) Save(ctx context.Context, a *forecast.Artifact) (string, error) {
	data, err := a.Marshal()
	if err != nil {
		return "", fmt.Errorf("failed to encode artifact: %w", err)
	}

	dirPath := filepath.Join(s.basePath, sanitizeTicker(a.Ticker))
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}

	path := filepath.Join(dirPath, uuid.New().String()+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	s.logger.Debug("Artifact saved",
		zap.String("ticker", a.Ticker),
		zap.String("path", path))
	return path, nil
}

// Load reads an artifact back from disk
func (s *LocalStorage) Load(ctx context.Context, path string) (*forecast.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	return forecast.UnmarshalArtifact(data)
}

// sanitizeTicker keeps artifact directory names filesystem-safe.
// Index tickers like ^NSEI contain characters worth replacing.
func sanitizeTicker(ticker string) string {
	replacer := strings.NewReplacer("^", "_", "/", "_", "\\", "_", "..", "_")
	return replacer.Replace(strings.ToUpper(ticker))
}
