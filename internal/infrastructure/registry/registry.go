package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"gorm.io/gorm"

	"modpanel/internal/bootstrap/logging"
	"modpanel/internal/errs"
	"modpanel/internal/infrastructure/persistence/gormsql/model"
	"modpanel/internal/infrastructure/persistence/gormsql/repository"
	"modpanel/internal/infrastructure/persistence/gormsql/uow"
	"modpanel/internal/ports"
)

type entry struct {
	server ports.Server
	db     *gorm.DB
}

// Registry holds one store per configured game server.
type Registry struct {
	entries map[string]entry
}

var _ ports.ServerRegistry = (*Registry)(nil)

func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Add wires the repositories and unit of work of one server over db.
func (r *Registry) Add(cfg ports.ServerConfig, db *gorm.DB) error {
	id := strings.TrimSpace(cfg.ServerID)
	if id == "" {
		return errors.New("server id is required")
	}
	if db == nil {
		return fmt.Errorf("server %q: db is required", id)
	}
	if _, exists := r.entries[id]; exists {
		return fmt.Errorf("server %q already registered", id)
	}

	cfg.ServerID = id
	scope := ports.ServerScope(id)
	r.entries[id] = entry{
		server: ports.Server{
			Config:      cfg,
			Punishments: repository.NewPunishmentRepository(db, scope, cfg.Tables),
			Players:     repository.NewPlayerRepository(db, scope, cfg.Tables),
			UoW:         uow.NewUnitOfWork(db, scope),
		},
		db: db,
	}
	return nil
}

func (r *Registry) Get(serverID string) (ports.Server, bool) {
	e, ok := r.entries[serverID]
	if !ok {
		return ports.Server{}, false
	}
	return e.server, true
}

// IDs lists the registered server ids in lexical order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Migrate creates or updates every server's tables under their configured names.
func (r *Registry) Migrate(ctx context.Context) error {
	for _, id := range r.IDs() {
		e := r.entries[id]
		t := e.server.Config.Tables
		for _, table := range model.ServerSchema(t.Players, t.PlayerMutes, t.PlayerWarnings, t.PlayerBans) {
			if err := e.db.WithContext(ctx).Table(table.Name).AutoMigrate(table.Model); err != nil {
				return errs.Wrapf(err, "migrate server %q table %q", id, table.Name)
			}
		}
		logging.Info(ctx, "server schema migrated", slog.String("server_id", id))
	}
	return nil
}

// Close closes every server connection and reports the first failure.
func (r *Registry) Close() error {
	var first error
	for _, id := range r.IDs() {
		sqlDB, err := r.entries[id].db.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil && first == nil {
			first = errs.Wrapf(err, "close server %q", id)
		}
	}
	return first
}
