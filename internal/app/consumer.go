package app

import (
	"context"
	"fmt"

	"go-estateflow/internal/bootstrap"
	"go-estateflow/internal/config"
	"go-estateflow/internal/events"
	"go-estateflow/internal/messaging/kafka/consumer"
	"go-estateflow/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer copies the record lifecycle topic into the audit log. The
// audit log is a Mongo collection for the mongo driver and structured log
// lines otherwise.
func RunConsumer(ctx context.Context, cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if len(cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}

	var audit bootstrap.AuditLogger = bootstrap.NewStdoutAuditLogger()
	if cfg.StoreDriver == config.StoreDriverMongo {
		client, err := connection.ConnectMongoWithRetry(ctx, cfg.Mongo, cfg.ConnectRetries)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())

		mongoAudit := bootstrap.NewMongoAuditLogger(client.Database(cfg.Mongo.Database))
		if err := mongoAudit.EnsureIndexes(ctx); err != nil {
			return err
		}
		audit = mongoAudit
	}

	reader := connection.NewKafkaReader(cfg.Kafka, events.RecordLifecycleTopic)
	defer reader.Close()

	consumer.ConsumeRecordLifecycle(ctx, reader, audit, logger)

	logger.Info("consumer shutting down")
	return nil
}
