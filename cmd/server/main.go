package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"anoa.com/healthmanage/internal/bootstrap"
	"anoa.com/healthmanage/internal/config"
	"anoa.com/healthmanage/internal/server"
	"anoa.com/healthmanage/pkg/database"
	"anoa.com/healthmanage/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, logger.FormatFor(cfg.AppEnv, cfg.LogFormat), "healthmanage")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Connect(cfg.DSN(), zl)
	if err != nil {
		zl.Fatal("database unavailable", zap.Error(err))
	}
	if err := bootstrap.Migrate(db); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}
	if err := bootstrap.SeedAdmin(db, cfg, zl); err != nil {
		zl.Fatal("failed to seed admin user", zap.Error(err))
	}

	srv, err := server.NewServer(cfg, db, zl)
	if err != nil {
		zl.Fatal("failed to build server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		zl.Fatal("server exited with error", zap.Error(err))
	}
}
