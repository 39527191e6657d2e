package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/nulzo/provider-metrics-api/cmd"
	"github.com/nulzo/provider-metrics-api/internal/catalog"
	"github.com/nulzo/provider-metrics-api/internal/config"
	"github.com/nulzo/provider-metrics-api/internal/platform/logger"
	"github.com/nulzo/provider-metrics-api/internal/platform/otel"
	"github.com/nulzo/provider-metrics-api/internal/server"
	"github.com/nulzo/provider-metrics-api/internal/store"
)

func main() {
	logger.Initialize(logger.DefaultConfig())
	defer logger.Sync()
	log := logger.Get()

	cmd.CheckForUpdates()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	if cfg.Tracing.Enabled {
		shutdown, err := otel.InitTracer("provider-metrics-api", log, os.Stdout)
		if err != nil {
			log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			_ = shutdown(context.Background())
		}()
	}

	// A corrupt document is fatal; serving a partial catalog silently is worse.
	st, err := store.Open(cfg.Store.Path, log)
	if err != nil {
		log.Fatal("Failed to open model store", zap.Error(err))
	}

	service := catalog.NewService(st)
	srv := server.New(cfg, log, service)

	log.Info("Starting query API",
		zap.String("port", cfg.Server.Port),
		zap.Int("models", st.Len()))
	if err := srv.Run(); err != nil {
		log.Fatal("Server failed", zap.Error(err))
	}
}
