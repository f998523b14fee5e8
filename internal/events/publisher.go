package events

import (
	"context"
	"encoding/json"

	"go-estateflow/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=publisher.go -destination=mock/publisher_mock.go -package=mock

type Publisher interface {
	Publish(ctx context.Context, event RecordEvent) error
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, RecordEvent) error {
	return nil
}

type kafkaPublisher struct {
	writer *kafkago.Writer
}

// NewKafkaPublisher writes events straight to the broker. Used when the
// store has no SQL database to host the outbox table.
func NewKafkaPublisher(writer *kafkago.Writer) Publisher {
	return &kafkaPublisher{writer: writer}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event RecordEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: RecordLifecycleTopic,
		Key:   []byte(event.RecordID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "kind", Value: []byte(event.Kind)},
		},
	})
}

type outboxPublisher struct {
	repo kafka.OutboxRepository
}

// NewOutboxPublisher queues events in the outbox table; cmd/worker relays
// them to Kafka.
func NewOutboxPublisher(repo kafka.OutboxRepository) Publisher {
	return &outboxPublisher{repo: repo}
}

func (p *outboxPublisher) Publish(ctx context.Context, event RecordEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:        event.EventID,
		RequestID: event.RequestID,
		Kind:      event.Kind,
		RecordID:  event.RecordID,
		CompanyID: event.CompanyID,
		EventType: event.EventType,
		Topic:     RecordLifecycleTopic,
		Payload:   payload,
		Status:    kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(outboxEvent); err != nil {
		return err
	}

	return p.repo.Create(ctx, outboxEvent)
}
