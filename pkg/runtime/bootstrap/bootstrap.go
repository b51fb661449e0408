// Package bootstrap wires configuration, storage and services into an App
// shared by the CLI and the web server.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"

	"github.com/de-tools/solar-atlas/pkg/services/auth"
	"github.com/de-tools/solar-atlas/pkg/services/config"
	"github.com/de-tools/solar-atlas/pkg/services/dashboard"
	"github.com/de-tools/solar-atlas/pkg/services/dataset"
	"github.com/de-tools/solar-atlas/pkg/services/report"
	"github.com/de-tools/solar-atlas/pkg/store/archive"
	"github.com/de-tools/solar-atlas/pkg/store/duckdb"
	"github.com/de-tools/solar-atlas/pkg/store/duckdb/projects"
	"github.com/rs/zerolog"
)

type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	DB        *sql.DB
	Explorer  dashboard.Explorer
	Assembler *report.Assembler
	Sessions  *auth.SessionStore
	Files     *archive.FileSink
	// Archive is nil unless archive.enabled is set.
	Archive report.Sink
}

// NewLogger builds the root logger at the configured level.
func NewLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

func AssemblerConfig(cfg config.ReportConfig) (report.Config, error) {
	loc, err := cfg.Location()
	if err != nil {
		return report.Config{}, err
	}
	return report.Config{
		Title:          cfg.Title,
		Locale:         cfg.Locale,
		CurrencySymbol: cfg.CurrencySymbol,
		ChartMode:      report.ChartMode(cfg.ChartMode),
		Compress:       cfg.Compress,
		Location:       loc,
	}, nil
}

// New seeds a fresh in-memory database from the configured dataset and
// builds every service on top of it. Close releases the database.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	ctx = logger.WithContext(ctx)

	assemblerCfg, err := AssemblerConfig(cfg.Report)
	if err != nil {
		return nil, err
	}

	ds, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}

	db, err := duckdb.NewDB(duckdb.Settings{})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	app, err := build(ctx, cfg, logger, db, ds, assemblerCfg)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

func build(
	ctx context.Context,
	cfg *config.Config,
	logger zerolog.Logger,
	db *sql.DB,
	ds *dataset.Dataset,
	assemblerCfg report.Config,
) (*App, error) {
	store, err := projects.NewStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create project store: %w", err)
	}
	if err := dataset.Seed(ctx, db, store, ds); err != nil {
		return nil, err
	}

	registry := config.NewDemoRegistry()
	if cfg.Auth.CredentialsFile != "" {
		if registry, err = config.NewCredentialRegistry(cfg.Auth.CredentialsFile); err != nil {
			return nil, err
		}
	}

	app := &App{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Explorer:  dashboard.NewExplorer(store, cfg.Report.RecentLimit),
		Assembler: report.NewAssembler(assemblerCfg),
		Sessions:  auth.NewSessionStore(registry),
		Files:     archive.NewFileSink(filepath.Clean(cfg.Report.OutputDir)),
	}

	if cfg.Archive.Enabled {
		sink, err := archive.NewS3SinkFromEnv(ctx, cfg.Archive.Region, cfg.Archive.Bucket, cfg.Archive.Prefix)
		if err != nil {
			return nil, err
		}
		app.Archive = sink
	}

	logger.Debug().
		Str("locale", assemblerCfg.Locale).
		Str("chart_mode", string(assemblerCfg.ChartMode)).
		Bool("archive", cfg.Archive.Enabled).
		Msg("application initialised")
	return app, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
