package artifact

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/config"
	"github.com/yourorg/forecast-service/internal/forecast"
)

func testArtifact(ticker string) *forecast.Artifact {
	return &forecast.Artifact{
		Ticker:    ticker,
		Transform: forecast.TransformLogReturn,
		InputLen:  20,
		PredLen:   5,
		Scaler:    forecast.Scaler{Mean: 0.0003, Std: 0.015},
		Network:   forecast.NewNetwork(20, 5, 42),
		TrainedAt: time.Now().UTC(),
	}
}

func TestLocalStorageSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(&config.LocalArtifactConfig{BasePath: dir}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	path, err := store.Save(context.Background(), testArtifact("ACME"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Errorf("artifact path %s should live under %s", path, dir)
	}

	loaded, err := store.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Ticker != "ACME" || loaded.InputLen != 20 || loaded.PredLen != 5 {
		t.Errorf("loaded artifact does not match: %+v", loaded)
	}
	if loaded.Scaler.Std != 0.015 {
		t.Errorf("scaler not preserved: %+v", loaded.Scaler)
	}
}

func TestLocalStorageSanitizesTicker(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(&config.LocalArtifactConfig{BasePath: dir}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	path, err := store.Save(context.Background(), testArtifact("^NSEI"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	rel, err := filepath.Rel(dir, path)
	if err != nil {
		t.Fatalf("Rel: %v", err)
	}
	if strings.Contains(rel, "^") {
		t.Errorf("artifact path should not contain ^: %s", rel)
	}

	// Ticker inside the artifact keeps its original form.
	loaded, err := store.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Ticker != "^NSEI" {
		t.Errorf("expected ticker ^NSEI, got %s", loaded.Ticker)
	}
}

func TestLocalStorageLoadMissing(t *testing.T) {
	store, err := NewLocalStorage(&config.LocalArtifactConfig{BasePath: t.TempDir()}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	if _, err := store.Load(context.Background(), "does/not/exist.json"); err == nil {
		t.Error("expected error loading a missing artifact")
	}
}
