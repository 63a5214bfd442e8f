package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"modpanel/internal/bootstrap/config"
	"modpanel/internal/bootstrap/database"
	"modpanel/internal/bootstrap/logging"
	"modpanel/internal/errs"
	"modpanel/internal/infrastructure/acl"
	"modpanel/internal/infrastructure/persistence/gormsql/model"
	"modpanel/internal/infrastructure/registry"
	"modpanel/internal/ports"
	"modpanel/internal/usecase/resolution"
)

type App struct {
	Config  config.Config
	Central *gorm.DB
	Servers *registry.Registry
}

func New(ctx context.Context, configFile string) (*App, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.app"))
	logging.Info(logCtx, "loading application config", slog.String("config_file", configFile))

	cfg, err := config.Load(logCtx, configFile)
	if err != nil {
		return nil, errs.Wrap(err, "load config")
	}

	opts := database.Options{Tracing: cfg.Telemetry.Enabled}
	db, err := database.Open(logCtx, cfg.Central, opts)
	if err != nil {
		return nil, errs.Wrap(err, "open central database")
	}

	servers, err := OpenRegistry(logCtx, cfg.Servers, opts)
	if err != nil {
		_ = database.Close(db)
		return nil, errs.Wrap(err, "open server registry")
	}

	logging.Info(logCtx, "application bootstrap completed",
		slog.String("central_driver", cfg.Central.Driver),
		slog.Int("servers", len(servers.IDs())),
	)

	return &App{
		Config:  cfg,
		Central: db,
		Servers: servers,
	}, nil
}

// OpenRegistry opens every configured server store. On failure the stores
// opened so far are closed again.
func OpenRegistry(ctx context.Context, servers []config.ServerConfig, opts database.Options) (*registry.Registry, error) {
	reg := registry.New()
	for _, s := range servers {
		serverCtx := logging.WithAttrs(ctx, slog.String("server_id", s.ID))
		db, err := database.Open(serverCtx, s.Database(), opts)
		if err != nil {
			_ = reg.Close()
			return nil, errs.Wrapf(err, "open server %q", s.ID)
		}
		if err := reg.Add(serverConfig(s), db); err != nil {
			_ = database.Close(db)
			_ = reg.Close()
			return nil, err
		}
	}
	return reg, nil
}

func serverConfig(s config.ServerConfig) ports.ServerConfig {
	return ports.ServerConfig{
		ServerID: s.ID,
		Name:     s.Name,
		Tables: ports.ServerTables{
			Players:        s.Tables.Players,
			PlayerMutes:    s.Tables.PlayerMutes,
			PlayerWarnings: s.Tables.PlayerWarnings,
			PlayerBans:     s.Tables.PlayerBans,
		},
	}
}

// Session authenticates actor against the configured grants.
func (a *App) Session(actor uuid.UUID) resolution.Session {
	if actor == uuid.Nil {
		return resolution.Session{}
	}
	return resolution.Session{
		PlayerID: actor,
		ACL:      acl.Grants(a.Config.Access.Grants).ForActor(actor),
	}
}

func (a *App) InitSchema(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.app"))
	logging.Info(logCtx, "start schema migration")

	if err := a.Central.WithContext(ctx).AutoMigrate(model.CentralModels()...); err != nil {
		return errs.Wrap(err, "auto migrate central schema")
	}
	if err := a.Servers.Migrate(logCtx); err != nil {
		return errs.Wrap(err, "auto migrate server schemas")
	}

	logging.Info(logCtx, "schema migration completed")
	return nil
}

func (a *App) Close(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	if err := a.Servers.Close(); err != nil {
		return err
	}
	if err := database.Close(a.Central); err != nil {
		return err
	}

	logging.Info(logging.WithAttrs(ctx, slog.String("component", "bootstrap.app")), "database connections closed")
	return nil
}
