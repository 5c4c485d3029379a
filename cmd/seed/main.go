// Command seed populates an empty store with the starter profiles and
// dreams and rewrites stored dreams into the current workflow shape. The
// server does the same on startup; this command exists for running the
// pass offline against a stopped server.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres"
	dreamrepo "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/dream"
	profilerepo "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/profile"
	"github.com/heartmarshall/dreamboard-backend/internal/app"
	"github.com/heartmarshall/dreamboard-backend/internal/config"
	"github.com/heartmarshall/dreamboard-backend/internal/service/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := seed.NewService(logger, dreamrepo.New(pool), profilerepo.New(pool))

	if err := svc.EnsureDefaults(ctx); err != nil {
		logger.Error("seed defaults", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := svc.NormalizeSpecs(ctx); err != nil {
		logger.Error("normalize specs", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seed completed")
}
