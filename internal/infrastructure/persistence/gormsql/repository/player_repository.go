package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"modpanel/internal/errs"
	"modpanel/internal/infrastructure/persistence/gormsql/model"
	"modpanel/internal/ports"
)

type PlayerRepository struct {
	scopedDB
	table string
}

var _ ports.PlayerRepository = (*PlayerRepository)(nil)

func NewPlayerRepository(db *gorm.DB, scope ports.TxScope, tables ports.ServerTables) *PlayerRepository {
	return &PlayerRepository{
		scopedDB: scopedDB{db: db, scope: scope},
		table:    tableOr(tables.Players, model.Player{}.TableName()),
	}
}

func (r *PlayerRepository) GetPlayer(ctx context.Context, playerID uuid.UUID) (ports.Player, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Player{}, err
	}

	var row model.Player
	if err := db.Table(r.table).Where("id = ?", playerID).Take(&row).Error; err != nil {
		return ports.Player{}, notFoundOr(err, "query player")
	}
	return ports.Player{PlayerID: row.ID, Name: row.Name}, nil
}

func (r *PlayerRepository) UpsertPlayer(ctx context.Context, player ports.Player) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.Player{ID: player.PlayerID, Name: player.Name}
	if err := db.Table(r.table).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&row).Error; err != nil {
		return errs.Wrap(err, "upsert player")
	}
	return nil
}
