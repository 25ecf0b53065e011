package cmd

import (
	"context"
	"fmt"

	"asset-janitor/core/assetpath"
	"asset-janitor/core/config"
	"asset-janitor/core/database"
	"asset-janitor/core/logger"
	"asset-janitor/core/metrics"
	"asset-janitor/core/reconcile"
	"asset-janitor/core/storage"
	"asset-janitor/feature/content"
	"asset-janitor/feature/integrity"
	"asset-janitor/feature/media"
	"asset-janitor/feature/media/poster"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps holds the shared clients and services every command is built from.
type deps struct {
	cfg        *config.Config
	logger     *zap.Logger
	db         *gorm.DB
	store      storage.Client
	normalizer *assetpath.Normalizer
	kinds      []content.Kind
	metrics    *metrics.Metrics
	records    *media.Repository
	engine     *reconcile.Engine
}

type depsOptions struct {
	// requireDB fails the build when the database is unreachable.
	requireDB bool
	// registry receives the service metrics; nil disables them.
	registry prometheus.Registerer
}

// buildDeps loads the configuration and wires the engine. Clients are created once and shared.
func buildDeps(opts depsOptions) (*deps, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	kinds, err := content.ParseKinds(cfg.Assets.ContentKinds)
	if err != nil {
		return nil, fmt.Errorf("invalid content kinds: %w", err)
	}

	d := &deps{
		cfg:        cfg,
		logger:     logg,
		kinds:      kinds,
		normalizer: assetpath.New(cfg.Storage.PublicURL, cfg.Storage.Bucket, cfg.Assets.URLMarker),
		metrics:    metrics.New(opts.registry),
	}

	if conn, err := database.Connect(cfg.Database); err != nil {
		if opts.requireDB {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		d.db = conn
		logg.Info("Connected to content database", zap.String("driver", cfg.Database.Driver))
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	d.store = store

	d.records = media.NewRepository(d.db)

	spec := reconcile.Spec{
		Collector:      content.NewCollector(d.db, kinds, d.normalizer, logg),
		Storage:        store,
		Bucket:         cfg.Storage.Bucket,
		Config:         cfg.Assets,
		StorageTimeout: cfg.Storage.Timeout(),
	}
	if d.db != nil {
		spec.Tracker = d.records
	}
	d.engine = reconcile.NewEngine(spec, logg, d.metrics)

	return d, nil
}

// migrate creates the media_records table when a database is connected.
func (d *deps) migrate(ctx context.Context) error {
	if d.db == nil {
		return nil
	}
	return d.records.AutoMigrate(ctx)
}

// mediaService builds the ingest service around the shared clients.
func (d *deps) mediaService() *media.Service {
	var posters poster.Generator
	ff := poster.NewFFmpeg(d.cfg.Assets.FFmpegPath)
	if ff.Available() {
		posters = ff
	} else {
		d.logger.Warn("ffmpeg not found, videos will be stored without posters", zap.String("path", d.cfg.Assets.FFmpegPath))
	}

	return media.NewService(d.records, d.store, media.Options{
		Bucket:         d.cfg.Storage.Bucket,
		Normalizer:     d.normalizer,
		Posters:        posters,
		Assets:         d.cfg.Assets,
		StorageTimeout: d.cfg.Storage.Timeout(),
	}, d.logger, d.metrics)
}

// integrityService builds the integrity checks for the configured scope.
func (d *deps) integrityService() (*integrity.Service, error) {
	tables, err := integrity.SchemaExpectations(d.kinds)
	if err != nil {
		return nil, err
	}
	return integrity.NewService(d.store, d.cfg.Storage.Bucket, d.cfg.Assets.Folders(), d.db, tables, d.logger), nil
}
