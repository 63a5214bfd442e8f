package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"modpanel/internal/domain/moderation"
	"modpanel/internal/errs"
	"modpanel/internal/infrastructure/persistence/gormsql/model"
	"modpanel/internal/ports"
)

// PunishmentRepository reads and writes one server's mute, warning and ban tables.
type PunishmentRepository struct {
	scopedDB
	tables map[moderation.PunishmentKind]string
}

var _ ports.PunishmentRepository = (*PunishmentRepository)(nil)

func NewPunishmentRepository(db *gorm.DB, scope ports.TxScope, tables ports.ServerTables) *PunishmentRepository {
	return &PunishmentRepository{
		scopedDB: scopedDB{db: db, scope: scope},
		tables: map[moderation.PunishmentKind]string{
			moderation.KindMute:    tableOr(tables.PlayerMutes, model.PlayerMute{}.TableName()),
			moderation.KindWarning: tableOr(tables.PlayerWarnings, model.PlayerWarning{}.TableName()),
			moderation.KindBan:     tableOr(tables.PlayerBans, model.PlayerBan{}.TableName()),
		},
	}
}

func (r *PunishmentRepository) tableDB(ctx context.Context, kind moderation.PunishmentKind) (*gorm.DB, error) {
	table, ok := r.tables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", moderation.ErrUnknownPunishmentType, kind)
	}
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return db.Table(table), nil
}

func (r *PunishmentRepository) GetPunishment(ctx context.Context, kind moderation.PunishmentKind, punishmentID uint64) (ports.Punishment, error) {
	db, err := r.tableDB(ctx, kind)
	if err != nil {
		return ports.Punishment{}, err
	}

	switch kind {
	case moderation.KindMute:
		var row model.PlayerMute
		if err := db.Where("id = ?", punishmentID).Take(&row).Error; err != nil {
			return ports.Punishment{}, notFoundOr(err, "query mute")
		}
		return mapMute(row), nil
	case moderation.KindWarning:
		var row model.PlayerWarning
		if err := db.Where("id = ?", punishmentID).Take(&row).Error; err != nil {
			return ports.Punishment{}, notFoundOr(err, "query warning")
		}
		return mapWarning(row), nil
	default:
		var row model.PlayerBan
		if err := db.Where("id = ?", punishmentID).Take(&row).Error; err != nil {
			return ports.Punishment{}, notFoundOr(err, "query ban")
		}
		return mapBan(row), nil
	}
}

func (r *PunishmentRepository) CreatePunishment(ctx context.Context, input ports.PunishmentCreate) (uint64, error) {
	db, err := r.tableDB(ctx, input.Kind)
	if err != nil {
		return 0, err
	}

	var (
		id        uint64
		createErr error
	)
	switch input.Kind {
	case moderation.KindMute:
		row := model.PlayerMute{
			PlayerID: input.PlayerID,
			ActorID:  input.ActorID,
			Reason:   input.Reason,
			Expires:  input.Expires,
			Soft:     moderation.FlagValue(input.Soft),
			Created:  model.StoreNow(),
			Updated:  model.StoreNow(),
		}
		createErr = db.Create(&row).Error
		id = row.ID
	case moderation.KindWarning:
		row := model.PlayerWarning{
			PlayerID: input.PlayerID,
			ActorID:  input.ActorID,
			Reason:   input.Reason,
			Expires:  input.Expires,
			Points:   input.Points,
			Read:     moderation.FlagValue(false),
			Created:  model.StoreNow(),
		}
		createErr = db.Create(&row).Error
		id = row.ID
	default:
		row := model.PlayerBan{
			PlayerID: input.PlayerID,
			ActorID:  input.ActorID,
			Reason:   input.Reason,
			Expires:  input.Expires,
			Created:  model.StoreNow(),
			Updated:  model.StoreNow(),
		}
		createErr = db.Create(&row).Error
		id = row.ID
	}
	if createErr != nil {
		return 0, errs.Wrapf(classifyWriteError(createErr), "insert %s", input.Kind)
	}
	return id, nil
}

func (r *PunishmentRepository) UpdatePunishment(ctx context.Context, kind moderation.PunishmentKind, punishmentID uint64, input ports.PunishmentUpdate) error {
	db, err := r.tableDB(ctx, kind)
	if err != nil {
		return err
	}

	updates := map[string]any{
		"reason":  input.Reason,
		"expires": input.Expires,
	}
	switch kind {
	case moderation.KindMute:
		updates["soft"] = moderation.FlagValue(input.Soft)
		updates["updated"] = model.CurrentTimestamp(db)
	case moderation.KindWarning:
		updates["points"] = input.Points
	case moderation.KindBan:
		updates["updated"] = model.CurrentTimestamp(db)
	}

	result := db.Where("id = ?", punishmentID).Updates(updates)
	if result.Error != nil {
		return errs.Wrapf(classifyWriteError(result.Error), "update %s", kind)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// MySQL reports 0 affected rows for a no-op update, so confirm the row
	// still exists inside the same transaction.
	check, err := r.tableDB(ctx, kind)
	if err != nil {
		return err
	}
	var count int64
	if err := check.Where("id = ?", punishmentID).Count(&count).Error; err != nil {
		return errs.Wrapf(err, "recheck %s", kind)
	}
	if count == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *PunishmentRepository) DeletePunishment(ctx context.Context, kind moderation.PunishmentKind, punishmentID uint64) error {
	db, err := r.tableDB(ctx, kind)
	if err != nil {
		return err
	}

	var result *gorm.DB
	switch kind {
	case moderation.KindMute:
		result = db.Where("id = ?", punishmentID).Delete(&model.PlayerMute{})
	case moderation.KindWarning:
		result = db.Where("id = ?", punishmentID).Delete(&model.PlayerWarning{})
	default:
		result = db.Where("id = ?", punishmentID).Delete(&model.PlayerBan{})
	}
	if result.Error != nil {
		return errs.Wrapf(classifyWriteError(result.Error), "delete %s", kind)
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func mapMute(row model.PlayerMute) ports.Punishment {
	return ports.Punishment{
		PunishmentID: row.ID,
		Kind:         moderation.KindMute,
		PlayerID:     row.PlayerID,
		ActorID:      row.ActorID,
		Reason:       row.Reason,
		Expires:      row.Expires,
		Soft:         moderation.Truthy(row.Soft),
		Created:      row.Created.Unix,
		Updated:      row.Updated.Unix,
	}
}

func mapWarning(row model.PlayerWarning) ports.Punishment {
	return ports.Punishment{
		PunishmentID: row.ID,
		Kind:         moderation.KindWarning,
		PlayerID:     row.PlayerID,
		ActorID:      row.ActorID,
		Reason:       row.Reason,
		Expires:      row.Expires,
		Points:       row.Points,
		Read:         moderation.Truthy(row.Read),
		Created:      row.Created.Unix,
	}
}

func mapBan(row model.PlayerBan) ports.Punishment {
	return ports.Punishment{
		PunishmentID: row.ID,
		Kind:         moderation.KindBan,
		PlayerID:     row.PlayerID,
		ActorID:      row.ActorID,
		Reason:       row.Reason,
		Expires:      row.Expires,
		Created:      row.Created.Unix,
		Updated:      row.Updated.Unix,
	}
}

func tableOr(name string, fallback string) string {
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed
	}
	return fallback
}
