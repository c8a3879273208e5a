package main

import (
	"context"
	"flag"
	"log"
	"time"

	"middlebeat"
	"middlebeat/internal/config"
	"middlebeat/internal/database/migration"
	dbpostgres "middlebeat/internal/database/postgres"
	"middlebeat/internal/database/seeder"
	"middlebeat/internal/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "apply migrations without loading demo data")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	l, err := logger.New(cfg.App.AppName+"-seed", cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() {
		_ = l.Sync()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, l)
	if err != nil {
		l.Fatal("connect failed", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	r := migration.Runner{Source: middlebeat.Migrations(), Logger: l}
	if err := r.Run(ctx, db); err != nil {
		l.Fatal("migration failed", zap.Error(err))
	}
	if *migrateOnly {
		return
	}

	s := seeder.Runner{Seeders: seeder.Defaults(), Logger: l}
	if err := s.Run(ctx, db); err != nil {
		l.Fatal("seed failed", zap.Error(err))
	}
	l.Info("demo data loaded")
}
