package producer

import (
	"go-estateflow/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// toMessage keys by record id so every event of one record lands on the
// same partition in order.
func toMessage(event kafka.OutboxEvent) kafkago.Message {
	headers := []kafkago.Header{
		{Key: "event_id", Value: []byte(event.ID)},
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "kind", Value: []byte(event.Kind)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}

	return kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.RecordID),
		Value:   event.Payload,
		Headers: headers,
	}
}
