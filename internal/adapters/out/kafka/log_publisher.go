package kafka

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"go.uber.org/zap"
)

// LogPublisher writes events to the log instead of a broker. It is used
// when no Kafka brokers are configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log.With(zap.String("component", "event_log"))}
}

func (p *LogPublisher) Publish(_ context.Context, events ...kernel.DomainEvent) error {
	for _, e := range events {
		fields := []zap.Field{
			zap.String("event_id", e.ID.String()),
			zap.String("event", e.Name),
			zap.String("aggregate_id", e.AggregateID.String()),
			zap.Time("occurred_at", e.OccurredAt),
		}
		for k, v := range e.Payload {
			fields = append(fields, zap.String(k, v))
		}
		p.log.Info("domain event", fields...)
	}
	return nil
}
