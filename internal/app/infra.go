package app

import (
	"context"
	"database/sql"
	"fmt"

	"go-estateflow/internal/bootstrap"
	"go-estateflow/internal/company"
	"go-estateflow/internal/config"
	"go-estateflow/internal/employee"
	"go-estateflow/internal/events"
	"go-estateflow/internal/messaging/kafka"
	"go-estateflow/internal/project"
	"go-estateflow/internal/shared/connection"
	"go-estateflow/internal/shared/counter"
	"go-estateflow/internal/store"
	"go-estateflow/internal/user"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Infra holds the backing services selected by configuration.
type Infra struct {
	Store     store.Store
	Counters  counter.Repository
	Publisher events.Publisher
	Redis     *redis.Client
	Audit     bootstrap.AuditLogger

	// SQL is set for the postgres driver only; the outbox lives there.
	SQL *sql.DB

	closers []func() error
}

func (i *Infra) onClose(fn func() error) {
	i.closers = append(i.closers, fn)
}

// Close releases connections in reverse order of opening.
func (i *Infra) Close() {
	for n := len(i.closers) - 1; n >= 0; n-- {
		if err := i.closers[n](); err != nil {
			zap.L().Warn("close infrastructure failed", zap.Error(err))
		}
	}
	i.closers = nil
}

// OpenInfra connects the store chosen by STORE_DRIVER plus the optional
// Redis and Kafka services. Postgres publishes through the outbox; the
// other drivers write to Kafka directly when brokers are configured.
func OpenInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	infra := &Infra{
		Publisher: events.NewNoopPublisher(),
		Audit:     bootstrap.NewStdoutAuditLogger(),
	}

	if err := openStore(ctx, cfg, infra); err != nil {
		infra.Close()
		return nil, err
	}

	if infra.SQL == nil && len(cfg.Kafka.Brokers) > 0 {
		writer, err := connection.ConnectKafkaWithRetry(ctx, cfg.Kafka, cfg.ConnectRetries)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.onClose(writer.Close)
		infra.Publisher = events.NewKafkaPublisher(writer)
	}

	if cfg.Redis.Addr != "" {
		rdb, err := connection.ConnectRedisWithRetry(ctx, cfg.Redis, cfg.ConnectRetries)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.onClose(rdb.Close)
		infra.Redis = rdb
	}

	return infra, nil
}

func openStore(ctx context.Context, cfg config.Config, infra *Infra) error {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		gormDB, err := connection.ConnectGORMWithRetry(ctx, cfg.DB, cfg.ConnectRetries)
		if err != nil {
			return err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return err
		}
		infra.onClose(sqlDB.Close)

		gormStore := store.NewGormStore(gormDB)
		if err := gormStore.AutoMigrate(&company.Company{}, &user.User{}, &employee.EmployeeProfile{}, &project.Project{}); err != nil {
			return fmt.Errorf("migrate records: %w", err)
		}
		if err := gormDB.AutoMigrate(&counter.Counter{}); err != nil {
			return fmt.Errorf("migrate counters: %w", err)
		}
		if err := kafka.EnsureOutboxSchema(ctx, sqlDB); err != nil {
			return err
		}

		infra.Store = gormStore
		infra.Counters = counter.NewRepository(gormDB)
		infra.Publisher = events.NewOutboxPublisher(kafka.NewOutboxRepository(sqlDB))
		infra.SQL = sqlDB

	case config.StoreDriverMongo:
		client, err := connection.ConnectMongoWithRetry(ctx, cfg.Mongo, cfg.ConnectRetries)
		if err != nil {
			return err
		}
		infra.onClose(func() error { return client.Disconnect(context.Background()) })

		db := client.Database(cfg.Mongo.Database)
		mongoStore := store.NewMongoStore(db)
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure mongo indexes: %w", err)
		}
		audit := bootstrap.NewMongoAuditLogger(db)
		if err := audit.EnsureIndexes(ctx); err != nil {
			return err
		}

		infra.Store = mongoStore
		infra.Counters = counter.NewMongoRepository(db)
		infra.Audit = audit

	case config.StoreDriverMemory:
		infra.Store = store.NewMemoryStore()
		infra.Counters = counter.NewMemoryRepository()

	default:
		return fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
	return nil
}
