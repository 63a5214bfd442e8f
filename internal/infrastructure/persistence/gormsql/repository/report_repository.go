package repository

import (
	"context"

	"gorm.io/gorm"

	"modpanel/internal/domain/moderation"
	"modpanel/internal/errs"
	"modpanel/internal/infrastructure/persistence/gormsql/model"
	"modpanel/internal/ports"
)

type ReportRepository struct {
	scopedDB
}

var _ ports.ReportRepository = (*ReportRepository)(nil)

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{scopedDB{db: db, scope: ports.CentralScope}}
}

func (r *ReportRepository) GetReport(ctx context.Context, serverID string, reportID uint64) (ports.Report, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Report{}, err
	}

	var row model.Report
	if err := db.Where("id = ? AND server_id = ?", reportID, serverID).Take(&row).Error; err != nil {
		return ports.Report{}, notFoundOr(err, "query report")
	}
	return mapReport(row), nil
}

func (r *ReportRepository) CreateReport(ctx context.Context, input ports.ReportCreate) (ports.Report, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Report{}, err
	}

	state := input.State
	if state == 0 {
		state = moderation.StateOpen
	}
	row := model.Report{
		ServerID:   input.ServerID,
		PlayerID:   input.PlayerID,
		ActorID:    input.ActorID,
		AssigneeID: nullUUID(input.AssigneeID),
		Reason:     input.Reason,
		StateID:    uint8(state),
		Created:    model.StoreNow(),
		Updated:    model.StoreNow(),
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Report{}, errs.Wrap(classifyWriteError(err), "insert report")
	}
	return r.GetReport(ctx, row.ServerID, row.ID)
}

func (r *ReportRepository) SetReportState(ctx context.Context, reportID uint64, state moderation.State) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	if err := db.Model(&model.Report{}).
		Where("id = ?", reportID).
		Updates(map[string]any{
			"state_id": uint8(state),
			"updated":  model.CurrentTimestamp(db),
		}).Error; err != nil {
		return errs.Wrap(err, "update report state")
	}
	return nil
}

func (r *ReportRepository) CreateReportCommand(ctx context.Context, input ports.ReportCommandCreate) (uint64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	row := model.ReportCommand{
		ReportID: input.ReportID,
		ActorID:  input.ActorID,
		Command:  input.Command,
		Args:     input.Args,
		Created:  model.StoreNow(),
		Updated:  model.StoreNow(),
	}
	if err := db.Create(&row).Error; err != nil {
		return 0, errs.Wrap(classifyWriteError(err), "insert report command")
	}
	return row.ID, nil
}

func (r *ReportRepository) ListReportCommands(ctx context.Context, reportID uint64) ([]ports.ReportCommand, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.ReportCommand
	if err := db.
		Where("report_id = ?", reportID).
		Order("id asc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query report commands")
	}

	items := make([]ports.ReportCommand, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.ReportCommand{
			CommandID: row.ID,
			ReportID:  row.ReportID,
			ActorID:   row.ActorID,
			Command:   row.Command,
			Args:      row.Args,
			Created:   row.Created.Unix,
			Updated:   row.Updated.Unix,
		})
	}
	return items, nil
}

func mapReport(row model.Report) ports.Report {
	return ports.Report{
		ReportID:   row.ID,
		ServerID:   row.ServerID,
		PlayerID:   row.PlayerID,
		ActorID:    row.ActorID,
		AssigneeID: fromNullUUID(row.AssigneeID),
		State:      moderation.State(row.StateID),
		Reason:     row.Reason,
		Created:    row.Created.Unix,
		Updated:    row.Updated.Unix,
	}
}
