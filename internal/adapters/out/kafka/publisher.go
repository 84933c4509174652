// Package kafka publishes committed domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/IBM/sarama"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// RetryConfig bounds the retries of one Publish call.
type RetryConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

var DefaultRetryConfig = RetryConfig{
	InitialInterval: 100 * time.Millisecond,
	MaxInterval:     2 * time.Second,
	MaxElapsedTime:  10 * time.Second,
}

// message is the wire format of a domain event.
type message struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	AggregateID string            `json:"aggregate_id"`
	OccurredAt  time.Time         `json:"occurred_at"`
	Payload     map[string]string `json:"payload"`
}

// Publisher sends events synchronously, keyed by aggregate so that all
// events of one order land on the same partition in order. Delivery is at
// least once; consumers deduplicate on the event id.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	retry    RetryConfig
	log      *zap.Logger
}

func NewPublisher(producer sarama.SyncProducer, topic string, retry RetryConfig, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{
		producer: producer,
		topic:    topic,
		retry:    retry,
		log:      log.With(zap.String("component", "kafka_publisher"), zap.String("topic", topic)),
	}
}

// NewSyncProducer builds a producer that waits for all in-sync replicas.
func NewSyncProducer(brokers []string, clientID string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return producer, nil
}

func (p *Publisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]*sarama.ProducerMessage, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(message{
			ID:          e.ID.String(),
			Name:        e.Name,
			AggregateID: e.AggregateID.String(),
			OccurredAt:  e.OccurredAt,
			Payload:     e.Payload,
		})
		if err != nil {
			return fmt.Errorf("encode event %s: %w", e.Name, err)
		}
		msgs = append(msgs, &sarama.ProducerMessage{
			Topic:     p.topic,
			Key:       sarama.StringEncoder(e.AggregateID.String()),
			Value:     sarama.ByteEncoder(value),
			Headers:   []sarama.RecordHeader{{Key: []byte("event"), Value: []byte(e.Name)}},
			Timestamp: e.OccurredAt,
		})
	}

	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(p.retry.InitialInterval),
		backoff.WithMaxInterval(p.retry.MaxInterval),
		backoff.WithMaxElapsedTime(p.retry.MaxElapsedTime),
	)
	attempt := 0
	operation := func() error {
		attempt++
		err := p.producer.SendMessages(msgs)
		if err != nil {
			p.log.Warn("send events", zap.Int("attempt", attempt), zap.Int("events", len(msgs)), zap.Error(err))
		}
		return err
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return fmt.Errorf("publish %d events: %w", len(msgs), err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
