package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dreshoplabs/dreshop-backend/internal/catalog"
	"github.com/dreshoplabs/dreshop-backend/pkg/config"
	"github.com/dreshoplabs/dreshop-backend/pkg/db"
	"github.com/dreshoplabs/dreshop-backend/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx = logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	repo := catalog.NewRepository(dbClient.DB())
	products := catalog.SeedProducts()

	if err := repo.Seed(ctx, products); err != nil {
		logg.Error(ctx, "seeding catalog failed", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "count", len(products)), "catalog seeded")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
