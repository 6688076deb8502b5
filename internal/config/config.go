package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Data       DataConfig
	Artifacts  ArtifactConfig
	Training   TrainingConfig
	Kafka      KafkaConfig
	Logging    LoggingConfig
	ServiceKey string
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds database specific configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DataConfig holds price data sourcing configuration
type DataConfig struct {
	LocalDir string
	CacheTTL time.Duration
}

// ArtifactConfig holds model artifact storage configuration
type ArtifactConfig struct {
	Type  string // "local" or "s3"
	Local LocalArtifactConfig
	S3    S3ArtifactConfig
}

// LocalArtifactConfig holds local filesystem artifact settings
type LocalArtifactConfig struct {
	BasePath string
}

// S3ArtifactConfig holds S3 artifact settings
type S3ArtifactConfig struct {
	Region    string
	Bucket    string
	KeyPrefix string
	Endpoint  string
}

// TrainingConfig holds training defaults not exposed per request
type TrainingConfig struct {
	ValFraction float64
	Seed        int64
}

// KafkaConfig holds Kafka specific configuration
type KafkaConfig struct {
	Brokers  string
	ClientID string
	Topics   map[string]string
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Environment variables override
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.readTimeout", "15s")
	v.SetDefault("server.writeTimeout", "120s")
	v.SetDefault("server.idleTimeout", "120s")

	// Database defaults
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", "30m")

	// Data sourcing defaults
	v.SetDefault("data.localDir", "")
	v.SetDefault("data.cacheTTL", "30m")

	// Artifact storage defaults
	v.SetDefault("artifacts.type", "local")
	v.SetDefault("artifacts.local.basePath", "artifacts")
	v.SetDefault("artifacts.s3.keyPrefix", "models")

	// Training defaults
	v.SetDefault("training.valFraction", 0.1)
	v.SetDefault("training.seed", 42)

	// Kafka defaults
	v.SetDefault("kafka.clientID", "forecast-service")
	v.SetDefault("kafka.topics.trainingEvents", "training-events")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
