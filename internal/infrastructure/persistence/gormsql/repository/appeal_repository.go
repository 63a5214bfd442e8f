package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"modpanel/internal/domain/moderation"
	"modpanel/internal/errs"
	"modpanel/internal/infrastructure/persistence/gormsql/model"
	"modpanel/internal/ports"
)

type AppealRepository struct {
	scopedDB
}

var _ ports.AppealRepository = (*AppealRepository)(nil)

func NewAppealRepository(db *gorm.DB) *AppealRepository {
	return &AppealRepository{scopedDB{db: db, scope: ports.CentralScope}}
}

func (r *AppealRepository) GetAppeal(ctx context.Context, appealID uint64) (ports.Appeal, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Appeal{}, err
	}

	var row model.Appeal
	if err := db.Where("id = ?", appealID).Take(&row).Error; err != nil {
		return ports.Appeal{}, notFoundOr(err, "query appeal")
	}
	return mapAppeal(row), nil
}

func (r *AppealRepository) CreateAppeal(ctx context.Context, input ports.AppealCreate) (ports.Appeal, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Appeal{}, err
	}

	state := input.State
	if state == 0 {
		state = moderation.StateOpen
	}
	row := model.Appeal{
		ServerID:       input.ServerID,
		ActorID:        input.ActorID,
		AssigneeID:     nullUUID(input.AssigneeID),
		PunishmentID:   input.PunishmentID,
		PunishmentType: input.PunishmentType,
		Reason:         input.Reason,
		StateID:        uint8(state),
		Created:        model.StoreNow(),
		Updated:        model.StoreNow(),
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Appeal{}, errs.Wrap(classifyWriteError(err), "insert appeal")
	}
	return r.GetAppeal(ctx, row.ID)
}

func (r *AppealRepository) SetAppealState(ctx context.Context, appealID uint64, state moderation.State) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	if err := db.Model(&model.Appeal{}).
		Where("id = ?", appealID).
		Updates(map[string]any{
			"state_id": uint8(state),
			"updated":  model.CurrentTimestamp(db),
		}).Error; err != nil {
		return errs.Wrap(err, "update appeal state")
	}
	return nil
}

func (r *AppealRepository) CreateAppealComment(ctx context.Context, input ports.AppealCommentCreate) (uint64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	row := model.AppealComment{
		AppealID: input.AppealID,
		ActorID:  input.ActorID,
		StateID:  uint8(input.State),
		Type:     string(input.Type),
		Created:  model.StoreNow(),
		Updated:  model.StoreNow(),
	}
	applyCommentDiff(&row, input.Diff)

	if err := db.Create(&row).Error; err != nil {
		return 0, errs.Wrap(classifyWriteError(err), "insert appeal comment")
	}
	return row.ID, nil
}

func (r *AppealRepository) ListAppealComments(ctx context.Context, appealID uint64) ([]ports.AppealComment, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.AppealComment
	if err := db.
		Where("appeal_id = ?", appealID).
		Order("id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query appeal comments")
	}

	items := make([]ports.AppealComment, 0, len(rows))
	for _, row := range rows {
		item, err := mapAppealComment(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func applyCommentDiff(row *model.AppealComment, d moderation.Diff) {
	if d.Expires != nil {
		row.OldExpires, row.NewExpires = ptr(d.Expires.Old), ptr(d.Expires.New)
	}
	if d.Reason != nil {
		row.OldReason, row.NewReason = ptr(d.Reason.Old), ptr(d.Reason.New)
	}
	if d.Soft != nil {
		row.OldSoft = ptr(moderation.FlagValue(d.Soft.Old))
		row.NewSoft = ptr(moderation.FlagValue(d.Soft.New))
	}
	if d.Points != nil {
		row.OldPoints, row.NewPoints = ptr(d.Points.Old), ptr(d.Points.New)
	}
}

func commentDiff(row model.AppealComment) moderation.Diff {
	var d moderation.Diff
	if row.OldExpires != nil && row.NewExpires != nil {
		d.Expires = &moderation.Change[int64]{Old: *row.OldExpires, New: *row.NewExpires}
	}
	if row.OldReason != nil && row.NewReason != nil {
		d.Reason = &moderation.Change[string]{Old: *row.OldReason, New: *row.NewReason}
	}
	if row.OldSoft != nil && row.NewSoft != nil {
		d.Soft = &moderation.Change[bool]{Old: moderation.Truthy(*row.OldSoft), New: moderation.Truthy(*row.NewSoft)}
	}
	if row.OldPoints != nil && row.NewPoints != nil {
		d.Points = &moderation.Change[int]{Old: *row.OldPoints, New: *row.NewPoints}
	}
	return d
}

func mapAppeal(row model.Appeal) ports.Appeal {
	return ports.Appeal{
		AppealID:       row.ID,
		ServerID:       row.ServerID,
		PunishmentType: row.PunishmentType,
		PunishmentID:   row.PunishmentID,
		ActorID:        row.ActorID,
		AssigneeID:     fromNullUUID(row.AssigneeID),
		State:          moderation.State(row.StateID),
		Reason:         row.Reason,
		Created:        row.Created.Unix,
		Updated:        row.Updated.Unix,
	}
}

func mapAppealComment(row model.AppealComment) (ports.AppealComment, error) {
	commentType, err := moderation.ParseCommentType(row.Type)
	if err != nil {
		return ports.AppealComment{}, errs.Wrapf(err, "appeal comment %d", row.ID)
	}
	return ports.AppealComment{
		CommentID: row.ID,
		AppealID:  row.AppealID,
		ActorID:   row.ActorID,
		State:     moderation.State(row.StateID),
		Type:      commentType,
		Diff:      commentDiff(row),
		Created:   row.Created.Unix,
		Updated:   row.Updated.Unix,
	}, nil
}

func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

func fromNullUUID(id uuid.NullUUID) uuid.UUID {
	if !id.Valid {
		return uuid.Nil
	}
	return id.UUID
}

func ptr[T any](v T) *T {
	return &v
}
