package resolution

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"modpanel/internal/domain/moderation"
	"modpanel/internal/ports"
)

// ResolveReportMute mutes the reported player, records the matching in-game
// command on the report and resolves it.
func (s *Service) ResolveReportMute(ctx context.Context, session Session, reportID uint64, serverID string, input ReportMuteInput) (ports.Report, error) {
	return s.resolveReport(ctx, opResolveReportMute, session, reportID, serverID, punishmentInput{
		kind:    moderation.KindMute,
		player:  input.Player,
		expires: input.Expires,
		reason:  input.Reason,
		soft:    input.Soft,
	})
}

func (s *Service) ResolveReportWarning(ctx context.Context, session Session, reportID uint64, serverID string, input ReportWarningInput) (ports.Report, error) {
	return s.resolveReport(ctx, opResolveReportWarning, session, reportID, serverID, punishmentInput{
		kind:    moderation.KindWarning,
		player:  input.Player,
		expires: input.Expires,
		reason:  input.Reason,
		points:  input.Points,
	})
}

func (s *Service) ResolveReportBan(ctx context.Context, session Session, reportID uint64, serverID string, input ReportBanInput) (ports.Report, error) {
	return s.resolveReport(ctx, opResolveReportBan, session, reportID, serverID, punishmentInput{
		kind:    moderation.KindBan,
		player:  input.Player,
		expires: input.Expires,
		reason:  input.Reason,
	})
}

func (s *Service) resolveReport(ctx context.Context, op string, session Session, reportID uint64, serverID string, input punishmentInput) (res ports.Report, err error) {
	ctx, finish := begin(ctx, op, session,
		attribute.Int64("report_id", int64(reportID)),
		attribute.String("server_id", serverID),
	)
	defer finish(&err)

	if err := s.ready(); err != nil {
		return ports.Report{}, err
	}
	if !session.authenticated() {
		return ports.Report{}, moderation.PermissionDenied()
	}
	if err := input.validate(true); err != nil {
		return ports.Report{}, err
	}

	server, ok := s.servers.Get(serverID)
	if !ok {
		return ports.Report{}, moderation.ServerNotFound()
	}

	report, err := s.central.Reports.GetReport(ctx, serverID, reportID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ports.Report{}, moderation.ReportNotFound(reportID)
		}
		return ports.Report{}, err
	}
	if !reportAllowed(session, report) {
		return ports.Report{}, moderation.PermissionDenied()
	}

	name, err := s.playerName(ctx, server, input.player)
	if err != nil {
		return ports.Report{}, err
	}
	command, err := moderation.BuildCommand(s.now(), moderation.CommandRequest{
		Kind:       input.kind,
		PlayerName: name,
		Reason:     input.reason,
		Expires:    input.expires,
		Points:     input.points,
	})
	if err != nil {
		return ports.Report{}, err
	}

	err = s.commitTwoPhase(ctx, op, server,
		func(txCtx context.Context) error {
			_, err := server.Punishments.CreatePunishment(txCtx, ports.PunishmentCreate{
				Kind:     input.kind,
				PlayerID: input.player,
				ActorID:  session.PlayerID,
				Reason:   input.reason,
				Expires:  input.expires,
				Soft:     input.soft,
				Points:   input.points,
			})
			if kind, ok := ports.ConflictOf(err); ok && kind == ports.ConflictDuplicateKey {
				return moderation.AlreadyPunished(input.kind)
			}
			return err
		},
		func(txCtx context.Context) error {
			if _, err := s.central.Reports.CreateReportCommand(txCtx, ports.ReportCommandCreate{
				ReportID: reportID,
				ActorID:  session.PlayerID,
				Command:  command.Name,
				Args:     command.Args,
			}); err != nil {
				return err
			}
			return s.central.Reports.SetReportState(txCtx, reportID, moderation.StateResolved)
		},
	)
	if err != nil {
		return ports.Report{}, err
	}

	return s.central.Reports.GetReport(ctx, serverID, reportID)
}
