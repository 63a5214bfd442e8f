package ports

import (
	"context"

	"github.com/google/uuid"

	"modpanel/internal/domain/moderation"
)

// Punishment is a server-store punishment row. Soft is only meaningful for
// mutes; Points and Read only for warnings.
type Punishment struct {
	PunishmentID uint64
	Kind         moderation.PunishmentKind
	PlayerID     uuid.UUID
	ActorID      uuid.UUID
	Reason       string
	Expires      int64
	Soft         bool
	Points       int
	Read         bool
	Created      int64
	Updated      int64
}

// Attributes returns the editable attributes of p for its variant.
func (p Punishment) Attributes() moderation.Attributes {
	attrs := moderation.Attributes{Reason: p.Reason, Expires: p.Expires}
	switch p.Kind {
	case moderation.KindMute:
		soft := p.Soft
		attrs.Soft = &soft
	case moderation.KindWarning:
		points := p.Points
		attrs.Points = &points
	}
	return attrs
}

type PunishmentCreate struct {
	Kind     moderation.PunishmentKind
	PlayerID uuid.UUID
	ActorID  uuid.UUID
	Reason   string
	Expires  int64
	Soft     bool
	Points   int
}

type PunishmentUpdate struct {
	Reason  string
	Expires int64
	Soft    bool
	Points  int
}

type Player struct {
	PlayerID uuid.UUID
	Name     string
}

// PunishmentRepository operates on one server's punishment tables.
type PunishmentRepository interface {
	GetPunishment(ctx context.Context, kind moderation.PunishmentKind, punishmentID uint64) (Punishment, error)
	// CreatePunishment returns a *ConflictError when a uniqueness constraint rejects the row.
	CreatePunishment(ctx context.Context, input PunishmentCreate) (uint64, error)
	UpdatePunishment(ctx context.Context, kind moderation.PunishmentKind, punishmentID uint64, input PunishmentUpdate) error
	DeletePunishment(ctx context.Context, kind moderation.PunishmentKind, punishmentID uint64) error
}

type PlayerRepository interface {
	GetPlayer(ctx context.Context, playerID uuid.UUID) (Player, error)
	UpsertPlayer(ctx context.Context, player Player) error
}

// ServerTables names a server's tables; servers may prefix or rename them.
type ServerTables struct {
	Players        string
	PlayerMutes    string
	PlayerWarnings string
	PlayerBans     string
}

type ServerConfig struct {
	ServerID string
	Name     string
	Tables   ServerTables
}

// Server is one game server's store: its config, repositories and transaction boundary.
type Server struct {
	Config      ServerConfig
	Punishments PunishmentRepository
	Players     PlayerRepository
	UoW         UnitOfWork
}

// ServerRegistry resolves a server identifier to its store.
type ServerRegistry interface {
	Get(serverID string) (Server, bool)
}
