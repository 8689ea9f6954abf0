package main

import (
	"context"

	"hr-hub/internal/app"
	"hr-hub/internal/bootstrap"
	"hr-hub/internal/config"
	"hr-hub/internal/shared/apperror"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apperror.Init()

	// build dependency + routes
	a, err := app.BuildApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	err = bootstrap.RunHTTPServer(
		a.Router,
		bootstrap.ServerConfig{
			Port:         cfg.HTTPPort,
			ReadTimeout:  cfg.HTTPReadTimeout,
			WriteTimeout: cfg.HTTPWriteTimeout,
			IdleTimeout:  cfg.HTTPIdleTimeout,
		},
		logger,
		a.Closers...,
	)
	if err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}
