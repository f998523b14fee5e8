package producer

import (
	"context"
	"time"

	"go-estateflow/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter is the part of *kafkago.Writer the relay uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type RelayConfig struct {
	PollInterval time.Duration
	BatchSize    int
	Lease        time.Duration
	MaxAttempts  int
	Retention    time.Duration
}

func (c RelayConfig) withDefaults() RelayConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = 3 * time.Second
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 50
	}
	if c.Lease <= 0 {
		c.Lease = 30 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 10
	}
	if c.Retention <= 0 {
		c.Retention = 7 * 24 * time.Hour
	}
	return c
}

// Relay drains the outbox table into Kafka.
type Relay struct {
	repo   kafka.OutboxRepository
	writer MessageWriter
	cfg    RelayConfig
	now    func() time.Time
	logger *zap.Logger
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, cfg RelayConfig, logger *zap.Logger) *Relay {
	if logger == nil {
		logger = zap.L()
	}
	return &Relay{
		repo:   repo,
		writer: writer,
		cfg:    cfg.withDefaults(),
		now:    time.Now,
		logger: logger.Named("kafka.producer.relay"),
	}
}

// Run polls until ctx is cancelled. Sent rows older than the retention
// window are purged once per hour.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()
	purge := time.NewTicker(time.Hour)
	defer purge.Stop()

	r.logger.Info("outbox relay started",
		zap.Duration("poll_interval", r.cfg.PollInterval),
		zap.Int("batch_size", r.cfg.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			// Keep draining while full batches come back.
			for {
				sent, err := r.Flush(ctx)
				if err != nil {
					r.logger.Error("process outbox events failed", zap.Error(err))
					break
				}
				if sent < r.cfg.BatchSize {
					break
				}
			}
		case <-purge.C:
			n, err := r.repo.PurgeSent(ctx, r.now().Add(-r.cfg.Retention))
			if err != nil {
				r.logger.Warn("purge sent outbox events failed", zap.Error(err))
				continue
			}
			if n > 0 {
				r.logger.Info("purged sent outbox events", zap.Int64("count", n))
			}
		}
	}
}

// Flush relays one claimed batch and reports how many events were claimed.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	events, err := r.repo.ClaimBatch(ctx, r.cfg.BatchSize, r.cfg.Lease)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	r.logger.Debug("processing claimed outbox events", zap.Int("count", len(events)))

	for _, event := range events {
		if err := r.writer.WriteMessages(ctx, toMessage(event)); err != nil {
			r.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.Int("attempts", event.Attempts+1),
				zap.Error(err),
			)
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error(), r.cfg.MaxAttempts); markErr != nil {
				r.logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			// The lease expires and the event is sent again; consumers
			// de-duplicate on event id.
			r.logger.Error("mark outbox sent failed", zap.String("outbox_id", event.ID), zap.Error(err))
			continue
		}

		r.logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("kind", event.Kind),
		)
	}

	return len(events), nil
}
