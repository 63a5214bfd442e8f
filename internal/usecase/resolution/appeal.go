package resolution

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"modpanel/internal/domain/moderation"
	"modpanel/internal/errs"
	"modpanel/internal/ports"
)

type appealTarget struct {
	appeal     ports.Appeal
	server     ports.Server
	punishment ports.Punishment
}

// loadAppealTarget reads the appeal from the central store and the punishment
// it references from the appeal's server store.
func (s *Service) loadAppealTarget(ctx context.Context, appealID uint64, kind moderation.PunishmentKind) (appealTarget, error) {
	appeal, err := s.central.Appeals.GetAppeal(ctx, appealID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return appealTarget{}, moderation.AppealNotFound(appealID)
		}
		return appealTarget{}, err
	}

	server, ok := s.servers.Get(appeal.ServerID)
	if !ok {
		return appealTarget{}, moderation.ServerNotFound()
	}

	appealKind, err := moderation.ParseAppealType(appeal.PunishmentType)
	if err != nil {
		return appealTarget{}, errs.Wrapf(err, "appeal %d", appealID)
	}
	if appealKind != kind {
		return appealTarget{}, moderation.PunishmentGone()
	}

	punishment, err := server.Punishments.GetPunishment(ctx, kind, appeal.PunishmentID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return appealTarget{}, moderation.PunishmentGone()
		}
		return appealTarget{}, err
	}

	return appealTarget{appeal: appeal, server: server, punishment: punishment}, nil
}

// resolveAppeal records comment on the appeal and marks it resolved. It runs
// inside the central store transaction.
func (s *Service) resolveAppeal(txCtx context.Context, session Session, appealID uint64, commentType moderation.CommentType, diff moderation.Diff) (uint64, error) {
	commentID, err := s.central.Appeals.CreateAppealComment(txCtx, ports.AppealCommentCreate{
		AppealID: appealID,
		ActorID:  session.PlayerID,
		State:    moderation.StateResolved,
		Type:     commentType,
		Diff:     diff,
	})
	if err != nil {
		return 0, err
	}

	if err := s.central.Appeals.SetAppealState(txCtx, appealID, moderation.StateResolved); err != nil {
		return 0, err
	}
	return commentID, nil
}

// UpdateMuteFromAppeal edits the mute an appeal refers to and resolves the appeal.
func (s *Service) UpdateMuteFromAppeal(ctx context.Context, session Session, appealID uint64, input UpdateMuteInput) (AppealResolution, error) {
	return s.updateFromAppeal(ctx, opUpdateMuteFromAppeal, session, appealID, punishmentInput{
		kind:    moderation.KindMute,
		expires: input.Expires,
		reason:  input.Reason,
		soft:    input.Soft,
	})
}

func (s *Service) UpdateWarningFromAppeal(ctx context.Context, session Session, appealID uint64, input UpdateWarningInput) (AppealResolution, error) {
	return s.updateFromAppeal(ctx, opUpdateWarningFromAppeal, session, appealID, punishmentInput{
		kind:    moderation.KindWarning,
		expires: input.Expires,
		reason:  input.Reason,
		points:  input.Points,
	})
}

func (s *Service) UpdateBanFromAppeal(ctx context.Context, session Session, appealID uint64, input UpdateBanInput) (AppealResolution, error) {
	return s.updateFromAppeal(ctx, opUpdateBanFromAppeal, session, appealID, punishmentInput{
		kind:    moderation.KindBan,
		expires: input.Expires,
		reason:  input.Reason,
	})
}

func (s *Service) updateFromAppeal(ctx context.Context, op string, session Session, appealID uint64, input punishmentInput) (res AppealResolution, err error) {
	ctx, finish := begin(ctx, op, session, attribute.Int64("appeal_id", int64(appealID)))
	defer finish(&err)

	if err := s.ready(); err != nil {
		return AppealResolution{}, err
	}
	if !session.authenticated() {
		return AppealResolution{}, moderation.PermissionDenied()
	}
	if err := input.validate(false); err != nil {
		return AppealResolution{}, err
	}

	target, err := s.loadAppealTarget(ctx, appealID, input.kind)
	if err != nil {
		return AppealResolution{}, err
	}
	if !appealAllowed(session, target.appeal, target.punishment, moderation.PunishmentUpdateRule(input.kind)) {
		return AppealResolution{}, moderation.PermissionDenied()
	}

	diff := moderation.ComputeDiff(target.punishment.Attributes(), input.attributes())

	var commentID uint64
	err = s.commitTwoPhase(ctx, op, target.server,
		func(txCtx context.Context) error {
			err := target.server.Punishments.UpdatePunishment(txCtx, input.kind, target.punishment.PunishmentID, input.update())
			if errors.Is(err, ports.ErrNotFound) {
				return moderation.PunishmentGone()
			}
			return err
		},
		func(txCtx context.Context) error {
			var err error
			commentID, err = s.resolveAppeal(txCtx, session, appealID, moderation.CommentTypeEditPunishment, diff)
			return err
		},
	)
	if err != nil {
		return AppealResolution{}, err
	}

	return AppealResolution{AppealID: appealID, CommentID: commentID}, nil
}

// DeleteMuteFromAppeal removes the mute an appeal refers to and resolves the appeal.
func (s *Service) DeleteMuteFromAppeal(ctx context.Context, session Session, appealID uint64) (AppealResolution, error) {
	return s.deleteFromAppeal(ctx, opDeleteMuteFromAppeal, session, appealID, moderation.KindMute)
}

func (s *Service) DeleteWarningFromAppeal(ctx context.Context, session Session, appealID uint64) (AppealResolution, error) {
	return s.deleteFromAppeal(ctx, opDeleteWarningFromAppeal, session, appealID, moderation.KindWarning)
}

func (s *Service) DeleteBanFromAppeal(ctx context.Context, session Session, appealID uint64) (AppealResolution, error) {
	return s.deleteFromAppeal(ctx, opDeleteBanFromAppeal, session, appealID, moderation.KindBan)
}

func (s *Service) deleteFromAppeal(ctx context.Context, op string, session Session, appealID uint64, kind moderation.PunishmentKind) (res AppealResolution, err error) {
	ctx, finish := begin(ctx, op, session, attribute.Int64("appeal_id", int64(appealID)))
	defer finish(&err)

	if err := s.ready(); err != nil {
		return AppealResolution{}, err
	}
	if !session.authenticated() {
		return AppealResolution{}, moderation.PermissionDenied()
	}

	target, err := s.loadAppealTarget(ctx, appealID, kind)
	if err != nil {
		return AppealResolution{}, err
	}
	if !appealAllowed(session, target.appeal, target.punishment, moderation.PunishmentDeleteRule(kind)) {
		return AppealResolution{}, moderation.PermissionDenied()
	}

	var commentID uint64
	err = s.commitTwoPhase(ctx, op, target.server,
		func(txCtx context.Context) error {
			err := target.server.Punishments.DeletePunishment(txCtx, kind, target.punishment.PunishmentID)
			if errors.Is(err, ports.ErrNotFound) {
				return moderation.PunishmentGone()
			}
			return err
		},
		func(txCtx context.Context) error {
			var err error
			commentID, err = s.resolveAppeal(txCtx, session, appealID, moderation.CommentTypeDeletePunishment, moderation.Diff{})
			return err
		},
	)
	if err != nil {
		return AppealResolution{}, err
	}

	return AppealResolution{AppealID: appealID, CommentID: commentID}, nil
}
