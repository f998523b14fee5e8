package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const DefaultIdempotencyTTL = 24 * time.Hour

// Chain bundles the per-route middleware that feature packages attach to
// their routes.
type Chain struct {
	Auth           gin.HandlerFunc
	RBAC           RBACService
	Redis          redis.Cmdable
	IdempotencyTTL time.Duration
}

func NewChain(verifier TokenVerifier, rbac RBACService, rdb redis.Cmdable) Chain {
	return Chain{
		Auth:           AuthMiddleware(verifier),
		RBAC:           rbac,
		Redis:          rdb,
		IdempotencyTTL: DefaultIdempotencyTTL,
	}
}

func (ch Chain) Authorize(resource, action string) gin.HandlerFunc {
	return RBACAuthorize(ch.RBAC, resource, action)
}

// Idempotent is a no-op when no Redis client is configured.
func (ch Chain) Idempotent() gin.HandlerFunc {
	if ch.Redis == nil {
		return func(c *gin.Context) { c.Next() }
	}
	ttl := ch.IdempotencyTTL
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return Idempotency(ch.Redis, ttl)
}
