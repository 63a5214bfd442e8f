package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadServersAndGrants(t *testing.T) {
	path := writeConfig(t, `
central:
  driver: sqlite
  dsn: central.db
servers:
  - id: s1
    name: Survival
    driver: sqlite
    dsn: s1.db
    tables:
      player_mutes: s1_player_mutes
cache:
  driver: memory
  ttl: 5m
access:
  grants:
    ae51c849-3f2a-4a37-986d-55ed5b02307f:
      - "*:player.mutes:update.any"
`)

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Name != "modpanel" {
		t.Fatalf("App.Name = %q", cfg.App.Name)
	}
	if len(cfg.Servers) != 1 || cfg.Servers[0].ID != "s1" {
		t.Fatalf("Servers = %+v", cfg.Servers)
	}
	if cfg.Servers[0].Tables.PlayerMutes != "s1_player_mutes" || cfg.Servers[0].Tables.PlayerBans != "" {
		t.Fatalf("Tables = %+v", cfg.Servers[0].Tables)
	}
	if cfg.Servers[0].Database().DSN != "s1.db" {
		t.Fatalf("Database() = %+v", cfg.Servers[0].Database())
	}
	if cfg.Cache.TTL != 5*time.Minute || cfg.Cache.Size != 1024 {
		t.Fatalf("Cache = %+v", cfg.Cache)
	}
	grants := cfg.Access.Grants["ae51c849-3f2a-4a37-986d-55ed5b02307f"]
	if len(grants) != 1 || grants[0] != "*:player.mutes:update.any" {
		t.Fatalf("Grants = %+v", cfg.Access.Grants)
	}
}

func TestValidateRejectsBadServers(t *testing.T) {
	base := Config{Central: DatabaseConfig{Driver: "sqlite", DSN: "c.db"}}

	cases := map[string][]ServerConfig{
		"missing id":  {{DSN: "a.db"}},
		"missing dsn": {{ID: "s1"}},
		"duplicate":   {{ID: "s1", DSN: "a.db"}, {ID: "s1", DSN: "b.db"}},
	}
	for name, servers := range cases {
		cfg := base
		cfg.Servers = servers
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: Validate() expected error", name)
		}
	}

	cfg := base
	cfg.Cache.Driver = "redis"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate() expected error for redis without url")
	}
}
