package main

import (
	"time"

	"go-estateflow/internal/app"
	"go-estateflow/internal/bootstrap"
	"go-estateflow/internal/config"
	"go-estateflow/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	apperror.Init()

	ctx, stop := bootstrap.SignalContext()
	defer stop()

	r := gin.New()
	r.Use(gin.Recovery())

	infra, err := app.BuildApp(ctx, r, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer infra.Close()

	if err := bootstrap.RunHTTPServer(
		ctx,
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		infra.Audit,
	); err != nil {
		logger.Error("http server stopped with error", zap.Error(err))
	}
}
