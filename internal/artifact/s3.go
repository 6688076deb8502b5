package artifact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/config"
	"github.com/yourorg/forecast-service/internal/forecast"
)

// S3Storage implements the Storage interface for Amazon S3
type S3Storage struct {
	client    *s3.S3
	bucket    string
	keyPrefix string
	logger    *zap.Logger
}

// NewS3Storage creates a new S3Storage
func NewS3Storage(cfg *config.S3ArtifactConfig, logger *zap.Logger) (*S3Storage, error) {
	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &S3Storage{
		client:    s3.New(sess),
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
		logger:    logger,
	}, nil
}

// Save uploads the artifact and returns an s3:// path
func (s *S3Storage) Save(ctx context.Context, a *forecast.Artifact) (string, error) {
	data, err := a.Marshal()
	if err != nil {
		return "", fmt.Errorf("failed to encode artifact: %w", err)
	}

	key := path.Join(s.keyPrefix, sanitizeTicker(a.Ticker), uuid.New().String()+".json")
	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		s.logger.Error("Failed to upload artifact to S3",
			zap.Error(err),
			zap.String("bucket", s.bucket),
			zap.String("key", key))
		return "", fmt.Errorf("failed to upload artifact: %w", err)
	}

	return "s3://" + s.bucket + "/" + key, nil
}

// Load downloads and decodes an artifact from an s3:// path
func (s *S3Storage) Load(ctx context.Context, artifactPath string) (*forecast.Artifact, error) {
	bucket, key, err := splitS3Path(artifactPath)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artifact %s: %w", artifactPath, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact body: %w", err)
	}
	return forecast.UnmarshalArtifact(data)
}

func splitS3Path(artifactPath string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(artifactPath, "s3://")
	if trimmed == artifactPath {
		return "", "", fmt.Errorf("not an s3 path: %s", artifactPath)
	}
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("malformed s3 path: %s", artifactPath)
	}
	return parts[0], parts[1], nil
}
