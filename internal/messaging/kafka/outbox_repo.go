package kafka

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	OutboxStatusPending    = "pending"
	OutboxStatusProcessing = "processing"
	OutboxStatusSent       = "sent"
	OutboxStatusFailed     = "failed"
	OutboxStatusDead       = "dead"
)

// OutboxSchema creates the outbox table. A row is claimed by one relay at a
// time through locked_until; an expired lease makes it claimable again.
const OutboxSchema = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id TEXT,
	kind VARCHAR(40) NOT NULL,
	record_id TEXT NOT NULL,
	company_id TEXT,
	event_type VARCHAR(40) NOT NULL,
	topic VARCHAR(120) NOT NULL,
	payload JSONB NOT NULL,
	status VARCHAR(20) NOT NULL,
	attempts INT NOT NULL DEFAULT 0,
	last_error TEXT,
	next_attempt_at TIMESTAMPTZ,
	locked_until TIMESTAMPTZ,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_claim ON outbox_events (status, next_attempt_at, created_at);
`

type OutboxEvent struct {
	ID        string
	RequestID string
	Kind      string
	RecordID  string
	CompanyID string
	EventType string
	Topic     string
	Payload   []byte
	Status    string
	Attempts  int
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ClaimBatch(ctx context.Context, limit int, lease time.Duration) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string, maxAttempts int) error
	PurgeSent(ctx context.Context, before time.Time) (int64, error)
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func EnsureOutboxSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, OutboxSchema); err != nil {
		return fmt.Errorf("create outbox schema: %w", err)
	}
	return nil
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	query := `
INSERT INTO outbox_events (
	id, request_id, kind, record_id, company_id, event_type, topic, payload, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`
	_, err := r.execer().ExecContext(
		ctx, query,
		event.ID, nullable(event.RequestID), event.Kind, event.RecordID, nullable(event.CompanyID),
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

// ClaimBatch leases up to limit deliverable events. Rows locked by a
// concurrent relay are skipped, so several workers can drain one table.
func (r *outboxRepository) ClaimBatch(ctx context.Context, limit int, lease time.Duration) ([]OutboxEvent, error) {
	query := `
UPDATE outbox_events
SET
	status = $3,
	locked_until = NOW() + ($2 * INTERVAL '1 second'),
	updated_at = NOW()
WHERE id IN (
	SELECT id FROM outbox_events
	WHERE (status IN ($4, $5) AND (next_attempt_at IS NULL OR next_attempt_at <= NOW()))
		OR (status = $3 AND locked_until < NOW())
	ORDER BY created_at ASC
	LIMIT $1
	FOR UPDATE SKIP LOCKED
)
RETURNING id::text, COALESCE(request_id, ''), kind, record_id, COALESCE(company_id, ''),
	event_type, topic, payload, status, attempts
`
	rows, err := r.db.QueryContext(ctx, query,
		limit, int(lease.Seconds()),
		OutboxStatusProcessing, OutboxStatusPending, OutboxStatusFailed,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]OutboxEvent, 0, limit)
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID,
			&e.RequestID,
			&e.Kind,
			&e.RecordID,
			&e.CompanyID,
			&e.EventType,
			&e.Topic,
			&e.Payload,
			&e.Status,
			&e.Attempts,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	query := `
UPDATE outbox_events
SET
	status = $2,
	processed_at = NOW(),
	locked_until = NULL,
	last_error = NULL,
	updated_at = NOW()
WHERE id = $1
`
	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusSent)
	return err
}

// MarkFailed schedules a retry with linear backoff, or parks the event as
// dead once maxAttempts deliveries have failed.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string, maxAttempts int) error {
	query := `
UPDATE outbox_events
SET
	attempts = attempts + 1,
	status = CASE WHEN attempts + 1 >= $4 THEN $5 ELSE $2 END,
	last_error = LEFT($3, 500),
	next_attempt_at = NOW() + (LEAST(attempts + 1, 10) * INTERVAL '15 seconds'),
	locked_until = NULL,
	updated_at = NOW()
WHERE id = $1
`
	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusFailed, reason, maxAttempts, OutboxStatusDead)
	return err
}

func (r *outboxRepository) PurgeSent(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM outbox_events WHERE status = $1 AND processed_at < $2`,
		OutboxStatusSent, before,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *outboxRepository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if event.Kind == "" || event.RecordID == "" {
		return errors.New("outbox kind and record id are required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
