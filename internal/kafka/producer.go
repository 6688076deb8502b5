package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/yourorg/forecast-service/internal/model"
)

// Producer publishes service events to Kafka. A producer built with no
// brokers is a no-op, so callers never need to branch on configuration.
type Producer struct {
	mu       sync.Mutex
	writers  map[string]*kafka.Writer
	brokers  []string
	clientID string
	logger   *zap.Logger
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, clientID string, logger *zap.Logger) *Producer {
	return &Producer{
		writers:  make(map[string]*kafka.Writer),
		brokers:  brokers,
		clientID: clientID,
		logger:   logger,
	}
}

// Enabled reports whether any brokers are configured.
func (p *Producer) Enabled() bool {
	return len(p.brokers) > 0
}

// getWriter returns a Kafka writer for the specified topic
func (p *Producer) getWriter(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, exists := p.writers[topic]; exists {
		return writer
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(p.brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		Transport: &kafka.Transport{
			ClientID: p.clientID,
		},
	}

	p.writers[topic] = writer
	return writer
}

// PublishTrainingCompleted emits a training-completed event keyed by
// ticker. Returns nil when the producer is disabled.
func (p *Producer) PublishTrainingCompleted(ctx context.Context, topic string, event model.TrainingCompletedEvent) error {
	if !p.Enabled() {
		return nil
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal training event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Ticker),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.getWriter(topic).WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish training event",
			zap.String("topic", topic),
			zap.String("ticker", event.Ticker),
			zap.Error(err))
		return err
	}

	p.logger.Debug("Training event published",
		zap.String("topic", topic),
		zap.String("ticker", event.Ticker))
	return nil
}

// Close closes all Kafka writers
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil {
			p.logger.Error("Failed to close Kafka writer",
				zap.String("topic", topic),
				zap.Error(err))
		}
	}
	return nil
}
