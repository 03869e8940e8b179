// Package cli wires configuration into the stores, registries and managers
// used by the folium commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/folium"
	"github.com/aretw0/folium/internal/adapters/file"
	redisStore "github.com/aretw0/folium/internal/adapters/redis"
	"github.com/aretw0/folium/internal/adapters/sqlite"
	"github.com/aretw0/folium/internal/config"
	"github.com/aretw0/folium/pkg/adapters/loam"
	"github.com/aretw0/folium/pkg/adapters/memory"
	redisLock "github.com/aretw0/folium/pkg/adapters/redis"
	"github.com/aretw0/folium/pkg/editor"
	"github.com/aretw0/folium/pkg/observability"
	"github.com/aretw0/folium/pkg/persistence/middleware"
	"github.com/aretw0/folium/pkg/ports"
	"github.com/aretw0/folium/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// lockPrefix namespaces distributed lock keys.
const lockPrefix = "folium:"

// App bundles the components built from a Config.
type App struct {
	Config     config.Config
	Logger     *slog.Logger
	Store      ports.DocumentStore
	BlockTypes editor.BlockTypes
	Manager    *session.Manager
	Registry   *prometheus.Registry

	closers []func() error
}

// Build creates the App described by cfg.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}

	store, locker, err := app.openStore(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	mws, err := storeMiddlewares(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Store = middleware.Chain(store, mws...)

	app.BlockTypes, err = openBlockTypes(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	metrics := observability.NewMetrics(app.Registry)
	hooks := observability.NewAggregator(metrics.Hooks())

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithEditorOptions(
			folium.WithBlockTypes(app.BlockTypes),
			folium.WithLifecycleHooks(hooks.Hooks()),
		),
	}
	if locker != nil {
		opts = append(opts, session.WithLocker(locker))
	}
	app.Manager = session.NewManager(app.Store, opts...)

	logger.Debug("Application built", "store", cfg.Store, "block_types", cfg.BlockTypesDir)
	return app, nil
}

// Close releases store connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openStore(cfg config.Config) (ports.DocumentStore, ports.DistributedLocker, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return memory.NewStore(), nil, nil
	case config.StoreFile:
		return file.New(cfg.File.Dir), nil, nil
	case config.StoreSQLite:
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store, nil, nil
	case config.StoreRedis:
		var opts []redisStore.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redisStore.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redisStore.WithTTL(cfg.Redis.TTL))
		}
		store := redisStore.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		a.closers = append(a.closers, store.Close)
		return store, redisLock.NewLocker(store.Client(), lockPrefix), nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func storeMiddlewares(cfg config.Config) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	// Masking runs before encryption so the ciphertext never holds raw values.
	if len(cfg.PIIFields) > 0 {
		mws = append(mws, middleware.NewPIIMiddleware(cfg.PIIFields))
	}
	key, err := cfg.Key()
	if err != nil {
		return nil, err
	}
	if key != nil {
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}
	return mws, nil
}

func openBlockTypes(ctx context.Context, cfg config.Config) (editor.BlockTypes, error) {
	if cfg.BlockTypesDir == "" {
		return memory.NewRegistry(), nil
	}
	registry, err := loam.Open(ctx, cfg.BlockTypesDir)
	if err != nil {
		return nil, fmt.Errorf("load block types: %w", err)
	}
	return registry, nil
}
