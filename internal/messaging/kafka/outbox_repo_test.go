package kafka

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOutboxMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock, OutboxRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock, NewOutboxRepository(db)
}

func TestOutboxRepository_Create(t *testing.T) {
	_, mock, repo := newOutboxMock(t)

	event := OutboxEvent{
		ID:        "0e1f7d1c-9f35-4b7b-8d1a-6f0f0a6f6d11",
		Kind:      "company",
		RecordID:  "3c0f3b8e-5d5a-4e39-9b7f-2f5c7b0d9a21",
		EventType: "record_created",
		Topic:     "estateflow.records.lifecycle.v1",
		Payload:   []byte(`{}`),
		Status:    OutboxStatusPending,
	}

	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(event.ID, nil, "company", event.RecordID, nil, "record_created", event.Topic, event.Payload, OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateInTx(t *testing.T) {
	db, mock, repo := newOutboxMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.WithTx(tx).Create(context.Background(), OutboxEvent{ID: "e-1", CompanyID: "c-1"}))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ClaimBatch(t *testing.T) {
	_, mock, repo := newOutboxMock(t)

	rows := sqlmock.NewRows([]string{"id", "request_id", "kind", "record_id", "company_id", "event_type", "topic", "payload", "status", "attempts"}).
		AddRow("e-1", "req-1", "user", "r-1", "c-1", "record_created", "t", []byte(`{"a":1}`), OutboxStatusProcessing, 0).
		AddRow("e-2", "", "project", "r-2", "", "record_updated", "t", []byte(`{"b":2}`), OutboxStatusProcessing, 3)

	mock.ExpectQuery("UPDATE outbox_events").
		WithArgs(50, 30, OutboxStatusProcessing, OutboxStatusPending, OutboxStatusFailed).
		WillReturnRows(rows)

	events, err := repo.ClaimBatch(context.Background(), 50, 30*time.Second)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "c-1", events[0].CompanyID)
	assert.Equal(t, 3, events[1].Attempts)
	assert.Equal(t, []byte(`{"b":2}`), events[1].Payload)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ClaimBatchError(t *testing.T) {
	_, mock, repo := newOutboxMock(t)
	mock.ExpectQuery("UPDATE outbox_events").WillReturnError(errors.New("conn reset"))

	_, err := repo.ClaimBatch(context.Background(), 10, time.Minute)
	assert.Error(t, err)
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	_, mock, repo := newOutboxMock(t)

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("e-1", OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("e-2", OutboxStatusFailed, "broker down", 5, OutboxStatusDead).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkSent(context.Background(), "e-1"))
	require.NoError(t, repo.MarkFailed(context.Background(), "e-2", "broker down", 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_PurgeSent(t *testing.T) {
	_, mock, repo := newOutboxMock(t)
	before := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("DELETE FROM outbox_events").
		WithArgs(OutboxStatusSent, before).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := repo.PurgeSent(context.Background(), before)
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := OutboxEvent{ID: "e", Kind: "user", RecordID: "r", Topic: "t", Payload: []byte(`{}`), Status: OutboxStatusPending}
	assert.NoError(t, ValidateOutboxEvent(valid))

	noTopic := valid
	noTopic.Topic = ""
	assert.Error(t, ValidateOutboxEvent(noTopic))

	noRecord := valid
	noRecord.RecordID = ""
	assert.Error(t, ValidateOutboxEvent(noRecord))

	processing := valid
	processing.Status = OutboxStatusProcessing
	assert.Error(t, ValidateOutboxEvent(processing))
}
