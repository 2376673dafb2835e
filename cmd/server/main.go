package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"inventario/internal/commons"
	"inventario/internal/config"
	"inventario/internal/infrastructure/logger"
	"inventario/internal/infrastructure/metrics"
	"inventario/internal/product"
	"inventario/internal/server"
	"inventario/internal/stock"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	m := metrics.New("inventario")

	products := product.NewModule(m, zapLogger)
	stocks := stock.NewModule(cfg.Stock, m, zapLogger)

	if cfg.Seed.File != "" {
		seed, err := commons.LoadSeed(cfg.Seed.File)
		if err != nil {
			zapLogger.Fatal("loading seed", zap.Error(err))
		}
		if err := seed.Apply(context.Background(), products.Service, stocks.Service, zapLogger); err != nil {
			zapLogger.Fatal("applying seed", zap.Error(err))
		}
	}

	router := server.NewRouter(products.Controller, stocks.Controller, m, cfg.Metrics, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
