package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  host: localhost
  user: forecast
  password: forecast
  dbname: forecast
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "8000" {
		t.Errorf("default port should be 8000, got %s", cfg.Server.Port)
	}
	if cfg.Server.WriteTimeout != 120*time.Second {
		t.Errorf("default write timeout should be 120s, got %s", cfg.Server.WriteTimeout)
	}
	if cfg.Data.CacheTTL != 30*time.Minute {
		t.Errorf("default cache TTL should be 30m, got %s", cfg.Data.CacheTTL)
	}
	if cfg.Artifacts.Type != "local" {
		t.Errorf("default artifact storage should be local, got %s", cfg.Artifacts.Type)
	}
	if cfg.Training.ValFraction != 0.1 {
		t.Errorf("default valFraction should be 0.1, got %f", cfg.Training.ValFraction)
	}
	if cfg.Training.Seed != 42 {
		t.Errorf("default seed should be 42, got %d", cfg.Training.Seed)
	}
	if got := cfg.Kafka.Topics["trainingEvents"]; got != "training-events" {
		t.Errorf("default training events topic should be training-events, got %s", got)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("database host not read from file, got %s", cfg.Database.Host)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9100"
  writeTimeout: 300s
data:
  localDir: /var/data/prices
  cacheTTL: 5m
artifacts:
  type: s3
  s3:
    region: us-east-1
    bucket: model-artifacts
training:
  valFraction: 0.2
  seed: 7
kafka:
  brokers: kafka-1:9092,kafka-2:9092
  topics:
    trainingEvents: model-training-done
serviceKey: secret
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9100" {
		t.Errorf("port not overridden, got %s", cfg.Server.Port)
	}
	if cfg.Server.WriteTimeout != 300*time.Second {
		t.Errorf("write timeout not overridden, got %s", cfg.Server.WriteTimeout)
	}
	if cfg.Data.LocalDir != "/var/data/prices" {
		t.Errorf("localDir not read, got %s", cfg.Data.LocalDir)
	}
	if cfg.Artifacts.Type != "s3" || cfg.Artifacts.S3.Bucket != "model-artifacts" {
		t.Errorf("artifact config not read: %+v", cfg.Artifacts)
	}
	if cfg.Artifacts.S3.KeyPrefix != "models" {
		t.Errorf("s3 key prefix default should survive partial override, got %s", cfg.Artifacts.S3.KeyPrefix)
	}
	if cfg.Training.ValFraction != 0.2 || cfg.Training.Seed != 7 {
		t.Errorf("training config not read: %+v", cfg.Training)
	}
	if cfg.Kafka.Brokers != "kafka-1:9092,kafka-2:9092" {
		t.Errorf("brokers not read, got %s", cfg.Kafka.Brokers)
	}
	if got := cfg.Kafka.Topics["trainingEvents"]; got != "model-training-done" {
		t.Errorf("topic not overridden, got %s", got)
	}
	if cfg.ServiceKey != "secret" {
		t.Errorf("serviceKey not read, got %s", cfg.ServiceKey)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
