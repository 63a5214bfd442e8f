package model

import "github.com/google/uuid"

type Appeal struct {
	ID             uint64        `gorm:"column:id;primaryKey;autoIncrement"`
	ServerID       string        `gorm:"column:server_id;type:varchar(255);not null;index"`
	ActorID        uuid.UUID     `gorm:"column:actor_id;type:varchar(36);not null;index"`
	AssigneeID     uuid.NullUUID `gorm:"column:assignee_id;type:varchar(36)"`
	PunishmentID   uint64        `gorm:"column:punishment_id;not null"`
	PunishmentType string        `gorm:"column:punishment_type;type:varchar(32);not null"`
	Reason         string        `gorm:"column:reason;type:text;not null"`
	StateID        uint8         `gorm:"column:state_id;not null;index"`
	Created        Timestamp     `gorm:"column:created;not null"`
	Updated        Timestamp     `gorm:"column:updated;not null"`
}

func (Appeal) TableName() string {
	return "bm_web_appeals"
}

type AppealComment struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	AppealID   uint64    `gorm:"column:appeal_id;not null;index"`
	ActorID    uuid.UUID `gorm:"column:actor_id;type:varchar(36);not null"`
	StateID    uint8     `gorm:"column:state_id;not null"`
	Type       string    `gorm:"column:type;type:varchar(32);not null"`
	OldExpires *int64    `gorm:"column:old_expires"`
	NewExpires *int64    `gorm:"column:new_expires"`
	OldReason  *string   `gorm:"column:old_reason;type:text"`
	NewReason  *string   `gorm:"column:new_reason;type:text"`
	OldSoft    *int      `gorm:"column:old_soft"`
	NewSoft    *int      `gorm:"column:new_soft"`
	OldPoints  *int      `gorm:"column:old_points"`
	NewPoints  *int      `gorm:"column:new_points"`
	Created    Timestamp `gorm:"column:created;not null"`
	Updated    Timestamp `gorm:"column:updated;not null"`
}

func (AppealComment) TableName() string {
	return "bm_web_appeal_comments"
}

type Report struct {
	ID         uint64        `gorm:"column:id;primaryKey;autoIncrement"`
	ServerID   string        `gorm:"column:server_id;type:varchar(255);not null;index"`
	PlayerID   uuid.UUID     `gorm:"column:player_id;type:varchar(36);not null;index"`
	ActorID    uuid.UUID     `gorm:"column:actor_id;type:varchar(36);not null"`
	AssigneeID uuid.NullUUID `gorm:"column:assignee_id;type:varchar(36)"`
	Reason     string        `gorm:"column:reason;type:text;not null"`
	StateID    uint8         `gorm:"column:state_id;not null;index"`
	Created    Timestamp     `gorm:"column:created;not null"`
	Updated    Timestamp     `gorm:"column:updated;not null"`
}

func (Report) TableName() string {
	return "bm_player_reports"
}

type ReportCommand struct {
	ID       uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	ReportID uint64    `gorm:"column:report_id;not null;index"`
	ActorID  uuid.UUID `gorm:"column:actor_id;type:varchar(36);not null"`
	Command  string    `gorm:"column:command;type:varchar(255);not null"`
	Args     string    `gorm:"column:args;type:text;not null"`
	Created  Timestamp `gorm:"column:created;not null"`
	Updated  Timestamp `gorm:"column:updated;not null"`
}

func (ReportCommand) TableName() string {
	return "bm_report_commands"
}

// CacheEntry backs the SQL key/value cache adapter.
type CacheEntry struct {
	Key       string `gorm:"column:cache_key;type:varchar(255);primaryKey"`
	Value     string `gorm:"column:value;type:text;not null"`
	ExpiresAt int64  `gorm:"column:expires_at;not null"`
	UpdatedAt string `gorm:"column:updated_at;type:text;not null"`
}

func (CacheEntry) TableName() string {
	return "cache_entries"
}

// CentralModels lists the central store's tables for schema migration.
func CentralModels() []any {
	return []any{
		&Appeal{},
		&AppealComment{},
		&Report{},
		&ReportCommand{},
		&CacheEntry{},
	}
}
