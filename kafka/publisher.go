// Package kafka publishes consumer lifecycle events. Publishing is
// best-effort: failures are logged and never surfaced to callers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/tair/consumer-favorites/pkg/logger"
)

// Publisher wraps a Kafka sync producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// ConsumerCreated publishes a consumer.created event
func (p *Publisher) ConsumerCreated(ctx context.Context, consumerID uuid.UUID) {
	p.publish(FavoriteEvent{
		EventType:  EventTypeConsumerCreated,
		ConsumerID: consumerID.String(),
	})
}

// FavoriteAdded publishes a favorite.added event
func (p *Publisher) FavoriteAdded(ctx context.Context, consumerID uuid.UUID, productID string) {
	p.publish(FavoriteEvent{
		EventType:  EventTypeFavoriteAdded,
		ConsumerID: consumerID.String(),
		ProductID:  productID,
	})
}

// FavoriteRemoved publishes a favorite.removed event
func (p *Publisher) FavoriteRemoved(ctx context.Context, consumerID uuid.UUID, productID string) {
	p.publish(FavoriteEvent{
		EventType:  EventTypeFavoriteRemoved,
		ConsumerID: consumerID.String(),
		ProductID:  productID,
	})
}

func (p *Publisher) publish(event FavoriteEvent) {
	event.EventID = fmt.Sprintf("evt_%d", time.Now().UnixNano())
	event.Timestamp = time.Now()

	eventBytes, err := json.Marshal(event)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to marshal event")
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: TopicFavoriteEvents,
		Key:   sarama.StringEncoder(event.ConsumerID),
		Value: sarama.ByteEncoder(eventBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.EventType)},
			{Key: []byte("event_id"), Value: []byte(event.EventID)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		logger.Logger.Error().
			Err(err).
			Str("topic", TopicFavoriteEvents).
			Str("event_type", event.EventType).
			Msg("Failed to publish event")
		return
	}

	logger.Logger.Info().
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("topic", TopicFavoriteEvents).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
