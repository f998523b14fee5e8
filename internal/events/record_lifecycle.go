package events

import (
	"encoding/json"
	"time"
)

const RecordLifecycleTopic = "estateflow.records.lifecycle.v1"

const (
	RecordCreated = "record_created"
	RecordUpdated = "record_updated"
	RecordDeleted = "record_deleted"
)

// RecordEvent is emitted after a record mutation has been persisted.
// Record holds the public JSON form of the record; credentials are never
// part of it.
type RecordEvent struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	RequestID  string          `json:"request_id,omitempty"`
	Kind       string          `json:"kind"`
	RecordID   string          `json:"record_id"`
	CompanyID  string          `json:"company_id,omitempty"`
	ActorID    string          `json:"actor_id,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	Record     json.RawMessage `json:"record,omitempty"`
}
