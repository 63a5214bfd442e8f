package model

import (
	"strings"

	"github.com/google/uuid"
)

type Player struct {
	ID   uuid.UUID `gorm:"column:id;type:varchar(36);primaryKey"`
	Name string    `gorm:"column:name;type:varchar(16);not null;index"`
}

func (Player) TableName() string {
	return "bm_players"
}

// PlayerMute rows are unique per player: a player holds at most one active mute.
type PlayerMute struct {
	ID       uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	PlayerID uuid.UUID `gorm:"column:player_id;type:varchar(36);not null;uniqueIndex"`
	ActorID  uuid.UUID `gorm:"column:actor_id;type:varchar(36);not null"`
	Reason   string    `gorm:"column:reason;type:varchar(255);not null"`
	Expires  int64     `gorm:"column:expires;not null"`
	Soft     int       `gorm:"column:soft;not null"`
	Created  Timestamp `gorm:"column:created;not null"`
	Updated  Timestamp `gorm:"column:updated;not null"`
}

func (PlayerMute) TableName() string {
	return "bm_player_mutes"
}

type PlayerWarning struct {
	ID       uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	PlayerID uuid.UUID `gorm:"column:player_id;type:varchar(36);not null;index"`
	ActorID  uuid.UUID `gorm:"column:actor_id;type:varchar(36);not null"`
	Reason   string    `gorm:"column:reason;type:varchar(255);not null"`
	Expires  int64     `gorm:"column:expires;not null"`
	Points   int       `gorm:"column:points;not null"`
	Read     int       `gorm:"column:read;not null"`
	Created  Timestamp `gorm:"column:created;not null"`
}

func (PlayerWarning) TableName() string {
	return "bm_player_warnings"
}

// PlayerBan rows are unique per player: a player holds at most one active ban.
type PlayerBan struct {
	ID       uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	PlayerID uuid.UUID `gorm:"column:player_id;type:varchar(36);not null;uniqueIndex"`
	ActorID  uuid.UUID `gorm:"column:actor_id;type:varchar(36);not null"`
	Reason   string    `gorm:"column:reason;type:varchar(255);not null"`
	Expires  int64     `gorm:"column:expires;not null"`
	Created  Timestamp `gorm:"column:created;not null"`
	Updated  Timestamp `gorm:"column:updated;not null"`
}

func (PlayerBan) TableName() string {
	return "bm_player_bans"
}

// ServerTable pairs a physical table name with the model stored in it.
type ServerTable struct {
	Name  string
	Model any
}

// ServerSchema lists a server store's tables under the given names. Empty
// names keep the default table name.
func ServerSchema(players, mutes, warnings, bans string) []ServerTable {
	return []ServerTable{
		{Name: nameOr(players, Player{}.TableName()), Model: &Player{}},
		{Name: nameOr(mutes, PlayerMute{}.TableName()), Model: &PlayerMute{}},
		{Name: nameOr(warnings, PlayerWarning{}.TableName()), Model: &PlayerWarning{}},
		{Name: nameOr(bans, PlayerBan{}.TableName()), Model: &PlayerBan{}},
	}
}

func nameOr(name string, fallback string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return fallback
}
