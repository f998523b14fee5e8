package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const AuditCollection = "audit_log"

// AuditLog is one entry of the audit trail. ID is the id of the event it
// came from, so a redelivered event overwrites its own entry.
type AuditLog struct {
	ID         string         `bson:"_id,omitempty"`
	Action     string         `bson:"action"`
	Message    string         `bson:"message"`
	Kind       string         `bson:"kind,omitempty"`
	RecordID   string         `bson:"record_id,omitempty"`
	CompanyID  string         `bson:"company_id,omitempty"`
	ActorID    string         `bson:"actor_id,omitempty"`
	RequestID  string         `bson:"request_id,omitempty"`
	OccurredAt time.Time      `bson:"occurred_at"`
	Meta       map[string]any `bson:"meta,omitempty"`
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog) error
}

type StdoutAuditLogger struct {
	logger *zap.Logger
}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{logger: zap.L().Named("audit")}
}

func (l *StdoutAuditLogger) Log(_ context.Context, entry AuditLog) error {
	occurred := entry.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	l.logger.Info("audit event",
		zap.String("timestamp", occurred.UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.String("kind", entry.Kind),
		zap.String("record_id", entry.RecordID),
		zap.String("company_id", entry.CompanyID),
		zap.String("actor_id", entry.ActorID),
		zap.Any("meta", entry.Meta),
	)
	return nil
}

// MongoAuditLogger keeps the audit trail in a Mongo collection.
type MongoAuditLogger struct {
	coll *mongo.Collection
}

func NewMongoAuditLogger(db *mongo.Database) *MongoAuditLogger {
	return &MongoAuditLogger{coll: db.Collection(AuditCollection)}
}

func (l *MongoAuditLogger) EnsureIndexes(ctx context.Context) error {
	_, err := l.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "record_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create audit indexes: %w", err)
	}
	return nil
}

func (l *MongoAuditLogger) Log(ctx context.Context, entry AuditLog) error {
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}
	if entry.ID == "" {
		_, err := l.coll.InsertOne(ctx, entry)
		return err
	}
	_, err := l.coll.ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry, options.Replace().SetUpsert(true))
	return err
}
