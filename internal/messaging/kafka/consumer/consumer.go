package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go-estateflow/internal/bootstrap"
	"go-estateflow/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeRecordLifecycle writes every lifecycle event into the audit log.
// A message is committed only after its entry is stored; undecodable
// messages are committed and dropped.
func ConsumeRecordLifecycle(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.record_lifecycle")
	log.Info("record lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("record lifecycle consumer stopped")
				return
			}
			log.Error("fetch record lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.RecordEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.EventID == "" {
			log.Error("decode record lifecycle event failed",
				zap.Int64("offset", msg.Offset),
				zap.Int("partition", msg.Partition),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := audit.Log(ctx, AuditEntry(event)); err != nil {
			// Not committed; the group redelivers it after a rebalance or restart.
			log.Error("write audit entry failed",
				zap.String("event_id", event.EventID),
				zap.String("record_id", event.RecordID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit record lifecycle message failed", zap.Error(err))
			continue
		}

		log.Debug("audit entry written",
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
			zap.String("kind", event.Kind),
		)
	}
}

func AuditEntry(event events.RecordEvent) bootstrap.AuditLog {
	entry := bootstrap.AuditLog{
		ID:         event.EventID,
		Action:     strings.ToUpper(event.EventType),
		Message:    fmt.Sprintf("%s %s %s", event.Kind, event.RecordID, strings.TrimPrefix(event.EventType, "record_")),
		Kind:       event.Kind,
		RecordID:   event.RecordID,
		CompanyID:  event.CompanyID,
		ActorID:    event.ActorID,
		RequestID:  event.RequestID,
		OccurredAt: event.OccurredAt,
	}

	if len(event.Record) > 0 {
		var record map[string]any
		if err := json.Unmarshal(event.Record, &record); err == nil {
			entry.Meta = map[string]any{"record": record}
		}
	}
	return entry
}
