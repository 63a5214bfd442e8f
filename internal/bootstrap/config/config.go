package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"modpanel/internal/bootstrap/logging"
	"modpanel/internal/errs"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Central   DatabaseConfig  `mapstructure:"central"`
	Servers   []ServerConfig  `mapstructure:"servers"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Access    AccessConfig    `mapstructure:"access"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// ServerConfig describes one game server's punishment store.
type ServerConfig struct {
	ID     string       `mapstructure:"id"`
	Name   string       `mapstructure:"name"`
	Driver string       `mapstructure:"driver"`
	DSN    string       `mapstructure:"dsn"`
	Tables TablesConfig `mapstructure:"tables"`
}

// Database returns the server store connection settings; the driver defaults to sqlite.
func (s ServerConfig) Database() DatabaseConfig {
	driver := s.Driver
	if strings.TrimSpace(driver) == "" {
		driver = "sqlite"
	}
	return DatabaseConfig{Driver: driver, DSN: s.DSN}
}

// TablesConfig overrides the physical table names of a server store. Empty
// names fall back to the bm_* defaults.
type TablesConfig struct {
	Players        string `mapstructure:"players"`
	PlayerMutes    string `mapstructure:"player_mutes"`
	PlayerWarnings string `mapstructure:"player_warnings"`
	PlayerBans     string `mapstructure:"player_bans"`
}

type CacheConfig struct {
	Driver   string        `mapstructure:"driver"`
	Size     int           `mapstructure:"size"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
}

// AccessConfig maps actor ids to "server:resource:action" grants.
type AccessConfig struct {
	Grants map[string][]string `mapstructure:"grants"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

func (l LogConfig) Options() logging.Options {
	return logging.Options{
		Level:      l.Level,
		Format:     l.Format,
		File:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
	}
}

func Load(ctx context.Context, configFile string) (Config, error) {
	if ctx == nil {
		return Config{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Config{}, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.config"))

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			// Keep default and env-backed config when no file is provided.
			logging.Warn(logCtx, "config file not found, fallback to defaults and env")
		} else {
			return Config{}, errs.Wrap(err, "read config")
		}
	} else {
		logging.Info(logCtx, "using config file", slog.String("path", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errs.Wrap(err, "unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	logging.Info(
		logCtx,
		"config loaded",
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
		slog.String("central_driver", cfg.Central.Driver),
		slog.Int("servers", len(cfg.Servers)),
		slog.String("cache_driver", cfg.Cache.Driver),
	)

	return cfg, nil
}

// Validate checks the settings that have no usable default.
func (c Config) Validate() error {
	if c.Central.DSN == "" {
		return errors.New("central.dsn is required")
	}

	seen := make(map[string]struct{}, len(c.Servers))
	for i, s := range c.Servers {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("servers[%d].id is required", i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("servers[%d].id %q is duplicated", i, s.ID)
		}
		seen[s.ID] = struct{}{}
		if s.DSN == "" {
			return fmt.Errorf("servers[%d].dsn is required", i)
		}
	}

	switch strings.ToLower(c.Cache.Driver) {
	case "", "none", "memory", "sql", "sqlite":
	case "redis":
		if c.Cache.RedisURL == "" {
			return errors.New("cache.redis_url is required for the redis cache")
		}
	default:
		return fmt.Errorf("unsupported cache driver %q", c.Cache.Driver)
	}

	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return errors.New("telemetry.endpoint is required when telemetry is enabled")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "modpanel")
	v.SetDefault("app.env", "local")
	v.SetDefault("central.driver", "sqlite")
	v.SetDefault("central.dsn", ".modpanel/central.sqlite")
	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.size", 1024)
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "modpanel")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 28)
}
