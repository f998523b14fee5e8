package app

import (
	"context"
	"fmt"

	"go-estateflow/internal/config"
	"go-estateflow/internal/messaging/kafka"
	"go-estateflow/internal/messaging/kafka/producer"
	"go-estateflow/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays the postgres outbox to Kafka until ctx is cancelled.
func RunWorker(ctx context.Context, cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	if cfg.StoreDriver != config.StoreDriverPostgres {
		return fmt.Errorf("outbox worker requires STORE_DRIVER=postgres, got %q", cfg.StoreDriver)
	}

	gormDB, err := connection.ConnectGORMWithRetry(ctx, cfg.DB, cfg.ConnectRetries)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := kafka.EnsureOutboxSchema(ctx, sqlDB); err != nil {
		return err
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(ctx, cfg.Kafka, cfg.ConnectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	relay := producer.NewRelay(
		kafka.NewOutboxRepository(sqlDB),
		kafkaWriter,
		producer.RelayConfig{
			PollInterval: cfg.Outbox.PollInterval,
			BatchSize:    cfg.Outbox.BatchSize,
			Lease:        cfg.Outbox.Lease,
			MaxAttempts:  cfg.Outbox.MaxAttempts,
			Retention:    cfg.Outbox.Retention,
		},
		logger,
	)

	relay.Run(ctx)
	logger.Info("worker shutting down")
	return nil
}
