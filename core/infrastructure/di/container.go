package di

import (
	"context"
	"errors"
	"time"

	"github.com/hyperterse/seeder/core/application/seeder"
	"github.com/hyperterse/seeder/core/config"
	"github.com/hyperterse/seeder/core/domain/interfaces"
	"github.com/hyperterse/seeder/core/infrastructure/store"
	"github.com/hyperterse/seeder/core/logger"
	"github.com/hyperterse/seeder/core/observability"
)

// Container holds all dependencies of one run
type Container struct {
	Config    *config.Config
	Store     interfaces.StoreGateway
	Seeder    *seeder.Seeder
	Providers *observability.Providers
}

// OpenStore connects the configured gateway: the in-memory store for dry
// runs, MongoDB otherwise. Both are instrumented.
func OpenStore(ctx context.Context, cfg *config.Config) (interfaces.StoreGateway, error) {
	if cfg.DryRun {
		logger.New("di").Infof("Dry run: using the in-memory store")
		return store.Instrument(store.NewMemoryStore()), nil
	}
	logger.New("di").Infof("Connecting to %s", observability.RedactURI(cfg.URI))
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	mongoStore, err := store.NewMongoStore(connectCtx, cfg.URI, cfg.Database, nil)
	if err != nil {
		return nil, err
	}
	return store.Instrument(mongoStore), nil
}

// NewContainer creates a new dependency injection container. The caller
// must Close it.
func NewContainer(ctx context.Context, cfg *config.Config, version string) (*Container, error) {
	providers, err := observability.Setup(ctx, version)
	if err != nil {
		return nil, err
	}

	catalog, err := cfg.LoadCatalog()
	if err != nil {
		_ = providers.Shutdown(ctx)
		return nil, err
	}

	gw, err := OpenStore(ctx, cfg)
	if err != nil {
		_ = providers.Shutdown(ctx)
		return nil, err
	}

	s, err := seeder.New(gw, cfg.GeneratorOptions(catalog), cfg.Database)
	if err != nil {
		_ = gw.Close()
		_ = providers.Shutdown(ctx)
		return nil, err
	}

	return &Container{
		Config:    cfg,
		Store:     gw,
		Seeder:    s,
		Providers: providers,
	}, nil
}

// WriteMetrics writes the run gauges when a metrics file is configured.
func (c *Container) WriteMetrics() error {
	if c.Config.MetricsFile == "" || c.Seeder == nil {
		return nil
	}
	if err := c.Seeder.Metrics().WriteTextfile(c.Config.MetricsFile, time.Now()); err != nil {
		return err
	}
	logger.New("di").Debugf("Metrics written to %s", c.Config.MetricsFile)
	return nil
}

// Close closes all resources
func (c *Container) Close() error {
	var errs []error
	if c.Store != nil {
		errs = append(errs, c.Store.Close())
	}
	if c.Providers != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errs = append(errs, c.Providers.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
