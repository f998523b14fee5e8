package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-estateflow/internal/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	RecordCacheKeyPrefix = "estateflow:record:"
	DefaultRecordTTL     = 10 * time.Minute
)

func RecordCacheKey(kind store.Kind, id uuid.UUID) string {
	return RecordCacheKeyPrefix + string(kind) + ":" + id.String()
}

// RecordCache is a read-through Redis cache for single records. Concurrent
// misses on the same key share one store load. Only the JSON form of a
// record is cached, so fields hidden from JSON are absent on a hit; mutations
// always read from the store.
type RecordCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
	logger *zap.Logger
}

func NewRecordCache(rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) *RecordCache {
	if ttl <= 0 {
		ttl = DefaultRecordTTL
	}
	l := zap.L().Named("lifecycle.cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("lifecycle.cache")
	}
	return &RecordCache{rdb: rdb, ttl: ttl, logger: l}
}

// Fetch decodes the cached record into dest, or calls load and caches its result.
func (c *RecordCache) Fetch(
	ctx context.Context,
	kind store.Kind,
	id uuid.UUID,
	dest any,
	load func(ctx context.Context) (any, error),
) error {
	key := RecordCacheKey(kind, id)

	cached, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if json.Unmarshal(cached, dest) == nil {
			return nil
		}
		c.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("record cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		rec, err := load(ctx)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("record cache write failed", zap.String("key", key), zap.Error(err))
		}
		return data, nil
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(v.([]byte), dest)
}

func (c *RecordCache) Invalidate(ctx context.Context, kind store.Kind, id uuid.UUID) {
	key := RecordCacheKey(kind, id)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.logger.Error("failed to invalidate record cache",
			zap.Error(err),
			zap.String("key", key),
		)
	}
}
