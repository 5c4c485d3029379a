// Package app assembles and runs the dream board server: configuration,
// logging, database pool, migrations, services, HTTP transport and
// graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres"
	abundancerepo "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/abundance"
	conversationrepo "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/conversation"
	dreamrepo "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/dream"
	journalrepo "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/journal"
	profilerepo "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/profile"
	settingsrepo "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/settings"
	"github.com/heartmarshall/dreamboard-backend/internal/adapter/provider/gemini"
	"github.com/heartmarshall/dreamboard-backend/internal/config"
	abundancesvc "github.com/heartmarshall/dreamboard-backend/internal/service/abundance"
	"github.com/heartmarshall/dreamboard-backend/internal/service/assistant"
	"github.com/heartmarshall/dreamboard-backend/internal/service/backup"
	dreamsvc "github.com/heartmarshall/dreamboard-backend/internal/service/dream"
	journalsvc "github.com/heartmarshall/dreamboard-backend/internal/service/journal"
	profilesvc "github.com/heartmarshall/dreamboard-backend/internal/service/profile"
	"github.com/heartmarshall/dreamboard-backend/internal/service/seed"
	settingssvc "github.com/heartmarshall/dreamboard-backend/internal/service/settings"
	specsvc "github.com/heartmarshall/dreamboard-backend/internal/service/spec"
	"github.com/heartmarshall/dreamboard-backend/internal/transport/middleware"
	"github.com/heartmarshall/dreamboard-backend/internal/transport/rest"
)

// Run is the application entry point. It blocks until ctx is cancelled,
// then shuts the HTTP server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := runMigrations(ctx, logger, cfg.Database.DSN); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	txm := postgres.NewTxManager(pool)

	dreams := dreamrepo.New(pool)
	profiles := profilerepo.New(pool)
	journal := journalrepo.New(pool)
	conversations := conversationrepo.New(pool)
	abundance := abundancerepo.New(pool)
	settings := settingsrepo.New(pool)

	generator, err := gemini.New(ctx, cfg.Generation, logger)
	if err != nil {
		return fmt.Errorf("generation client: %w", err)
	}

	dreamService := dreamsvc.NewService(logger, dreams)
	specService := specsvc.NewService(logger, dreams, profiles, generator)
	profileService := profilesvc.NewService(logger, profiles)
	journalService := journalsvc.NewService(logger, journal, settings)
	abundanceService := abundancesvc.NewService(logger, abundance)
	settingsService := settingssvc.NewService(logger, settings)
	assistantService := assistant.NewService(logger, conversations, generator)
	backupService := backup.NewService(logger, dreams, profiles, journal, conversations, abundance, settings, txm)
	seedService := seed.NewService(logger, dreams, profiles)

	if cfg.Seed.Enabled {
		if err := seedService.EnsureDefaults(ctx); err != nil {
			return fmt.Errorf("seed defaults: %w", err)
		}
	}
	if err := seedService.NormalizeSpecs(ctx); err != nil {
		return fmt.Errorf("normalize specs: %w", err)
	}

	rateLimiter := middleware.NewRateLimiter(5 * time.Minute)
	defer rateLimiter.Stop()

	mux := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
		Dream:     rest.NewDreamHandler(dreamService, logger),
		Spec:      rest.NewSpecHandler(specService, logger),
		Profile:   rest.NewProfileHandler(profileService, logger),
		Journal:   rest.NewJournalHandler(journalService, logger),
		Abundance: rest.NewAbundanceHandler(abundanceService, logger),
		Settings:  rest.NewSettingsHandler(settingsService, logger),
		Assistant: rest.NewAssistantHandler(assistantService, logger),
		Backup:    rest.NewBackupHandler(backupService, cfg.Server.MaxBodyBytes, logger),
		Generate:  rest.NewGenerateHandler(generator, generator, cfg.Server.MaxBodyBytes, logger),
	}, rateLimiter.Limit(cfg.Generation.RateLimitPerMinute))

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.ActiveProfile(),
	)(mux)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
