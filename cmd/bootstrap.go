package cmd

import (
	"context"
	"fmt"

	"asset-sync/core/cloudinary"
	"asset-sync/core/commercetools"
	"asset-sync/core/config"
	"asset-sync/core/database"
	"asset-sync/core/logger"
	"asset-sync/core/metrics"
	"asset-sync/core/reconcile"
	"asset-sync/core/secrets"
	"asset-sync/core/storage"
	assetsync "asset-sync/feature/sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the components shared by every command.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	secrets secrets.Provider
	catalog *commercetools.Client
	db      *gorm.DB
	archive *storage.Archive
	sync    *assetsync.Service
}

// bootstrap loads configuration and builds the shared components. Storage and database are
// optional; failures to reach them are logged and the component is left disabled.
func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	rt := &runtime{cfg: cfg, logger: logg, metrics: metrics.New()}

	provider, err := secrets.NewProvider(ctx, cfg.Secrets, secrets.Static{
		cfg.Secrets.CatalogClientSecretName: cfg.Catalog.ClientSecret,
		cfg.Secrets.MediaAPISecretName:      cfg.Media.APISecret,
	}, logg)
	if err != nil {
		return nil, err
	}
	rt.secrets = provider

	if err := secrets.Fill(ctx, provider, map[string]*string{
		cfg.Secrets.CatalogClientSecretName: &cfg.Catalog.ClientSecret,
		cfg.Secrets.MediaAPISecretName:      &cfg.Media.APISecret,
	}); err != nil {
		logg.Warn("Failed to resolve secrets", zap.Error(err))
	}

	rt.catalog = commercetools.NewClient(ctx, cfg.Catalog, logg, commercetools.WithAttributeTTL(cfg.Catalog.AttributeCacheTTL))
	resolver := cloudinary.NewClient(cfg.Media, cfg.Mapping, logg)

	var journal assetsync.Journal = assetsync.NopJournal{}
	if cfg.Database.Enabled {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			gj := assetsync.NewGormJournal(conn)
			if err := gj.Migrate(); err != nil {
				logg.Warn("Journal migration failed", zap.Error(err))
			}
			rt.db = conn
			journal = gj
			logg.Info("Connected to journal database", zap.String("driver", cfg.Database.Driver))
		}
	}

	if cfg.Storage.Enabled {
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional storage client failed", zap.Error(err))
		} else {
			rt.archive = storage.NewArchive(client, cfg.Storage.Bucket, cfg.Storage.Prefix)
		}
	}

	rt.sync = assetsync.NewService(assetsync.Dependencies{
		Resolver: resolver,
		Catalog:  rt.catalog,
		CatalogFor: func(ctx context.Context, token string) reconcile.Catalog {
			return commercetools.NewTokenClient(ctx, cfg.Catalog, token, logg)
		},
		Planner: reconcile.NewPlanner(cfg.Mapping),
		Journal: journal,
		Metrics: rt.metrics,
		Logger:  logg,
	})

	return rt, nil
}

// close releases the components opened by bootstrap.
func (rt *runtime) close() {
	if rt.secrets != nil {
		_ = rt.secrets.Close()
	}
	if rt.db != nil {
		if sqlDB, err := rt.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = rt.logger.Sync()
}
