package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carebox/diabetes-risk/pkg/events"
	pkgkafka "github.com/carebox/diabetes-risk/pkg/kafka"
)

// HeaderEventType carries the event type on every published message.
const HeaderEventType = "event_type"

// MessageWriter is the subset of pkg/kafka.Producer used by KafkaPublisher.
type MessageWriter interface {
	Topic() string
	Publish(ctx context.Context, messages ...pkgkafka.Message) error
}

// KafkaPublisher implements port.EventPublisher using Kafka. Events are
// keyed by aggregate ID so all events of one prediction share a partition.
type KafkaPublisher struct {
	writer MessageWriter
	logger *slog.Logger
}

// NewKafkaPublisher creates a new Kafka event publisher.
func NewKafkaPublisher(writer MessageWriter, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

// Publish sends domain events to Kafka in a single batch.
func (p *KafkaPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		eventType := evt.EventType()

		payload, err := events.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", eventType),
			slog.String("event_id", evt.EventID().String()),
			slog.String("topic", p.writer.Topic()),
			slog.Int("payload_size", len(payload)),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: payload,
			Headers: map[string]string{
				HeaderEventType: eventType,
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.writer.Publish(ctx, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.writer.Topic(), err)
	}
	return nil
}
