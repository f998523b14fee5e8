package app

import (
	"context"
	"net/http"

	"go-estateflow/internal/config"
	"go-estateflow/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp wires every module onto router. The returned Infra must be
// closed by the caller.
func BuildApp(ctx context.Context, router *gin.Engine, cfg config.Config, logger *zap.Logger) (*Infra, error) {
	infra, err := OpenInfra(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("infrastructure ready",
		zap.String("store_driver", cfg.StoreDriver),
		zap.Bool("cache", infra.Redis != nil),
		zap.Int("kafka_brokers", len(cfg.Kafka.Brokers)),
	)

	if err := Mount(router, cfg, infra, logger); err != nil {
		infra.Close()
		return nil, err
	}

	return infra, nil
}

// Mount installs the global middleware and every module route on router.
func Mount(router *gin.Engine, cfg config.Config, infra *Infra, logger *zap.Logger) error {
	router.Use(middleware.RequestID(), middleware.ContextLogger(logger))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return registerModules(router, cfg, infra, logger)
}
