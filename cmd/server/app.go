package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/mixread/srs-api/internal/config"
	"github.com/mixread/srs-api/internal/domain/srs"
	"github.com/mixread/srs-api/internal/platform/logger"
	"github.com/mixread/srs-api/internal/platform/postgres"
	"github.com/mixread/srs-api/internal/service/sessions"
	"github.com/mixread/srs-api/internal/service/vocabulary"
)

// application bundles the long-lived dependencies every request handler
// draws from.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	db       *sql.DB
	store    vocabulary.EntryStore
	engine   srs.Engine
	registry *sessions.Registry
}

// newApplication loads configuration and wires the service graph: logging,
// the database connection (with migrations applied), the scheduling engine,
// and the session registry.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := postgres.Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	engine := srs.NewEngineWithParams(srs.NewParams(srs.ParamsConfig{
		MinEaseFactor: cfg.Review.MinEaseFactor,
	}))

	registry := sessions.NewRegistry(
		time.Duration(cfg.Review.SessionTTLMinutes)*time.Minute,
		sessions.DefaultSweepInterval,
		appLogger,
	)

	return &application{
		config:   cfg,
		logger:   appLogger,
		db:       db,
		store:    postgres.NewVocabularyStore(db, appLogger),
		engine:   engine,
		registry: registry,
	}, nil
}

// cleanup releases the application's long-lived resources.
func (app *application) cleanup() {
	app.registry.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database connection", "error", err)
	}
}
