// Package app provides the main application bootstrap and runtime orchestration.
//
// The App type wires together all dependencies and exposes methods to run
// the operational modes:
//
//   - Serve mode: loads the launch dataset once and serves the dashboard
//   - Import mode: loads the CSV dataset and replaces the launches stored in PostgreSQL
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/lueurxax/launch-dashboard/internal/core/errors"
	"github.com/lueurxax/launch-dashboard/internal/dashboard"
	"github.com/lueurxax/launch-dashboard/internal/dataset"
	"github.com/lueurxax/launch-dashboard/internal/platform/config"
	"github.com/lueurxax/launch-dashboard/internal/platform/observability"
	db "github.com/lueurxax/launch-dashboard/internal/storage"
)

const (
	logFieldSource  = "source"
	logFieldRecords = "records"
	logFieldPath    = "path"
)

// App holds the application dependencies and provides methods to run different modes.
type App struct {
	cfg    *config.Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given dependencies.
func New(cfg *config.Config, logger *zerolog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// LoadDataset reads the launch records from the configured source.
func (a *App) LoadDataset(ctx context.Context) (*dataset.Dataset, error) {
	start := time.Now()
	source := a.cfg.DatasetSource

	var (
		ds  *dataset.Dataset
		err error
	)

	switch source {
	case config.DatasetSourceCSV:
		ds, err = dataset.LoadFile(a.cfg.DatasetPath)
	case config.DatasetSourcePostgres:
		ds, err = a.loadFromPostgres(ctx)
	default:
		err = fmt.Errorf("%w: unknown dataset source %q", apperrors.ErrInvalidConfig, source)
	}

	if err != nil {
		return nil, err
	}

	observability.DatasetLoadDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	observability.DatasetRecords.WithLabelValues(source).Set(float64(ds.Len()))

	a.logger.Info().
		Str(logFieldSource, source).
		Int(logFieldRecords, ds.Len()).
		Float64("min_payload", ds.MinPayload).
		Float64("max_payload", ds.MaxPayload).
		Msg("Dataset loaded")

	return ds, nil
}

func (a *App) loadFromPostgres(ctx context.Context) (*dataset.Dataset, error) {
	database, err := a.openDatabase(ctx)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	launches, err := database.LoadLaunches(ctx)
	if err != nil {
		return nil, fmt.Errorf("load launches: %w", err)
	}

	if len(launches) == 0 {
		return nil, fmt.Errorf("launches table: %w", apperrors.ErrDatasetEmpty)
	}

	return dataset.FromLaunches(launches), nil
}

func (a *App) openDatabase(ctx context.Context) (*db.DB, error) {
	dbCfg := a.cfg.DatabaseCfg()

	poolOpts := db.PoolOptions{
		MaxConns:          dbCfg.MaxConnections,
		MinConns:          dbCfg.MinConnections,
		MaxConnIdleTime:   dbCfg.MaxConnIdleTime,
		MaxConnLifetime:   dbCfg.MaxConnLifetime,
		HealthCheckPeriod: dbCfg.HealthCheckPeriod,
	}

	database, err := db.NewWithOptions(ctx, dbCfg.PostgresDSN, poolOpts, a.logger)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := database.Migrate(ctx); err != nil {
		database.Close()

		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return database, nil
}

// RunServer loads the dataset and serves the dashboard until ctx is cancelled.
func (a *App) RunServer(ctx context.Context) error {
	ds, err := a.LoadDataset(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	handler, err := dashboard.NewHandler(a.cfg, ds, a.logger)
	if err != nil {
		return fmt.Errorf("dashboard handler init: %w", err)
	}

	server := observability.NewServer(a.cfg.HTTPPort, handler, datasetReadiness(ds), a.logger)

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("serve dashboard: %w", err)
	}

	return nil
}

// RunImport loads the CSV dataset and replaces the launches stored in PostgreSQL.
func (a *App) RunImport(ctx context.Context) error {
	if a.cfg.PostgresDSN == "" {
		return fmt.Errorf("%w: POSTGRES_DSN is required for import", apperrors.ErrInvalidConfig)
	}

	ds, err := dataset.LoadFile(a.cfg.DatasetPath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	database, err := a.openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.ReplaceLaunches(ctx, ds.Launches()); err != nil {
		return fmt.Errorf("import launches: %w", err)
	}

	observability.LaunchesImported.Add(float64(ds.Len()))

	a.logger.Info().
		Str(logFieldPath, a.cfg.DatasetPath).
		Int(logFieldRecords, ds.Len()).
		Msg("Launch records imported")

	return nil
}

var errDatasetNotLoaded = errors.New("dataset not loaded")

func datasetReadiness(ds *dataset.Dataset) observability.ReadinessCheck {
	return func(context.Context) error {
		if ds == nil || ds.Len() == 0 {
			return errDatasetNotLoaded
		}

		return nil
	}
}
