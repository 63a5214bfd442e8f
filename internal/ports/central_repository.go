package ports

import (
	"context"

	"github.com/google/uuid"

	"modpanel/internal/domain/moderation"
)

type Appeal struct {
	AppealID       uint64
	ServerID       string
	PunishmentType string
	PunishmentID   uint64
	ActorID        uuid.UUID
	AssigneeID     uuid.UUID
	State          moderation.State
	Reason         string
	Created        int64
	Updated        int64
}

type AppealCreate struct {
	ServerID       string
	PunishmentType string
	PunishmentID   uint64
	ActorID        uuid.UUID
	AssigneeID     uuid.UUID
	State          moderation.State
	Reason         string
}

type AppealComment struct {
	CommentID uint64
	AppealID  uint64
	ActorID   uuid.UUID
	State     moderation.State
	Type      moderation.CommentType
	Diff      moderation.Diff
	Created   int64
	Updated   int64
}

type AppealCommentCreate struct {
	AppealID uint64
	ActorID  uuid.UUID
	State    moderation.State
	Type     moderation.CommentType
	Diff     moderation.Diff
}

type Report struct {
	ReportID   uint64
	ServerID   string
	PlayerID   uuid.UUID
	ActorID    uuid.UUID
	AssigneeID uuid.UUID
	State      moderation.State
	Reason     string
	Created    int64
	Updated    int64
}

type ReportCreate struct {
	ServerID   string
	PlayerID   uuid.UUID
	ActorID    uuid.UUID
	AssigneeID uuid.UUID
	State      moderation.State
	Reason     string
}

type ReportCommand struct {
	CommandID uint64
	ReportID  uint64
	ActorID   uuid.UUID
	Command   string
	Args      string
	Created   int64
	Updated   int64
}

type ReportCommandCreate struct {
	ReportID uint64
	ActorID  uuid.UUID
	Command  string
	Args     string
}

// AppealRepository is the central-store view of appeals and their comments.
type AppealRepository interface {
	GetAppeal(ctx context.Context, appealID uint64) (Appeal, error)
	CreateAppeal(ctx context.Context, input AppealCreate) (Appeal, error)
	// SetAppealState stamps updated with the store's current timestamp.
	SetAppealState(ctx context.Context, appealID uint64, state moderation.State) error
	CreateAppealComment(ctx context.Context, input AppealCommentCreate) (uint64, error)
	ListAppealComments(ctx context.Context, appealID uint64) ([]AppealComment, error)
}

// ReportRepository is the central-store view of reports and their commands.
type ReportRepository interface {
	GetReport(ctx context.Context, serverID string, reportID uint64) (Report, error)
	CreateReport(ctx context.Context, input ReportCreate) (Report, error)
	SetReportState(ctx context.Context, reportID uint64, state moderation.State) error
	CreateReportCommand(ctx context.Context, input ReportCommandCreate) (uint64, error)
	ListReportCommands(ctx context.Context, reportID uint64) ([]ReportCommand, error)
}

// CentralStore bundles the shared database's repositories and its transaction boundary.
type CentralStore struct {
	Appeals AppealRepository
	Reports ReportRepository
	UoW     UnitOfWork
}
