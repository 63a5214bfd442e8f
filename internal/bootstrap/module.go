package bootstrap

import (
	"context"
	"log/slog"
	"strings"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"modpanel/internal/bootstrap/config"
	"modpanel/internal/bootstrap/database"
	"modpanel/internal/bootstrap/logging"
	"modpanel/internal/bootstrap/telemetry"
	cacheinfra "modpanel/internal/infrastructure/cache"
	gormrepo "modpanel/internal/infrastructure/persistence/gormsql/repository"
	gormuow "modpanel/internal/infrastructure/persistence/gormsql/uow"
	"modpanel/internal/infrastructure/registry"
	"modpanel/internal/ports"
	"modpanel/internal/usecase/resolution"
)

var Module = fx.Options(
	fx.Provide(provideConfig),
	fx.Invoke(configureLogging),
	fx.Invoke(setupTelemetry),
	fx.Provide(provideDatabase),
	fx.Provide(provideRegistry),
	fx.Provide(provideServerRegistry),
	fx.Provide(provideCentralStore),
	fx.Provide(provideCache),
	fx.Provide(provideApp),
	fx.Provide(provideResolutionService),
)

type configParams struct {
	fx.In

	Ctx        context.Context
	ConfigFile string `name:"configFile"`
}

func provideConfig(p configParams) (config.Config, error) {
	ctx := logging.WithAttrs(p.Ctx, slog.String("component", "bootstrap.fx"))
	return config.Load(ctx, p.ConfigFile)
}

func configureLogging(lc fx.Lifecycle, cfg config.Config) error {
	closer, err := logging.Configure(cfg.Log.Options())
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return closer.Close()
		},
	})
	return nil
}

func setupTelemetry(lc fx.Lifecycle, ctx context.Context, cfg config.Config) error {
	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: shutdown,
	})
	return nil
}

func provideDatabase(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"), slog.String("store", "central"))

	db, err := database.Open(logCtx, cfg.Central, database.Options{Tracing: cfg.Telemetry.Enabled})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return database.Close(db)
		},
	})

	return db, nil
}

func provideRegistry(lc fx.Lifecycle, ctx context.Context, cfg config.Config) (*registry.Registry, error) {
	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.fx"))

	reg, err := OpenRegistry(logCtx, cfg.Servers, database.Options{Tracing: cfg.Telemetry.Enabled})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return reg.Close()
		},
	})
	return reg, nil
}

func provideServerRegistry(reg *registry.Registry) ports.ServerRegistry {
	return reg
}

func provideCentralStore(db *gorm.DB) ports.CentralStore {
	return ports.CentralStore{
		Appeals: gormrepo.NewAppealRepository(db),
		Reports: gormrepo.NewReportRepository(db),
		UoW:     gormuow.NewUnitOfWork(db, ports.CentralScope),
	}
}

// provideCache returns a nil cache when caching is disabled.
func provideCache(lc fx.Lifecycle, ctx context.Context, cfg config.Config, db *gorm.DB) (ports.Cache, error) {
	switch strings.ToLower(cfg.Cache.Driver) {
	case "sql", "sqlite":
		return cacheinfra.NewSQLCache(db), nil
	case "memory":
		return cacheinfra.NewMemoryCache(cfg.Cache.Size, cfg.Cache.TTL), nil
	case "redis":
		c, err := cacheinfra.NewRedisCache(ctx, cfg.Cache.RedisURL, cfg.Cache.Size, cfg.Cache.TTL)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return c.Close()
			},
		})
		return c, nil
	default:
		return nil, nil
	}
}

func provideApp(cfg config.Config, db *gorm.DB, reg *registry.Registry) *App {
	return &App{
		Config:  cfg,
		Central: db,
		Servers: reg,
	}
}

func provideResolutionService(central ports.CentralStore, servers ports.ServerRegistry, cache ports.Cache, cfg config.Config) *resolution.Service {
	return resolution.NewService(central, servers, cache, resolution.WithPlayerNameTTL(cfg.Cache.TTL))
}
