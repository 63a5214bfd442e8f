package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"modpanel/internal/bootstrap"
	"modpanel/internal/bootstrap/logging"
	"modpanel/internal/usecase/resolution"
)

var appealCmd = &cobra.Command{
	Use:   "appeal",
	Short: "Resolve appeals by editing or removing the appealed punishment",
}

// appealEdit builds the update input of one punishment kind from flags.
type appealEdit func(ctx context.Context, cmd *cobra.Command, svc *resolution.Service, session resolution.Session, appealID uint64, reason string, expires int64) (resolution.AppealResolution, error)

func newAppealUpdateCmd(use string, short string, edit appealEdit) *cobra.Command {
	c := &cobra.Command{
		Use:   use + " <appeal-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *resolution.Service) error {
			ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

			appealID, err := parseIDArg(cmd, "appeal")
			if err != nil {
				return err
			}
			actor, err := parseActor(cmd)
			if err != nil {
				return err
			}
			expires, err := resolveExpires(cmd, time.Now())
			if err != nil {
				return err
			}
			reason, _ := cmd.Flags().GetString("reason")

			res, err := edit(ctx, cmd, svc, app.Session(actor), appealID, reason, expires)
			if err != nil {
				return err
			}
			return writeJSON(cmd, res)
		}),
	}
	addActorFlag(c)
	addPunishmentFlags(c)
	return c
}

type appealRemove func(ctx context.Context, svc *resolution.Service, session resolution.Session, appealID uint64) (resolution.AppealResolution, error)

func newAppealDeleteCmd(use string, short string, remove appealRemove) *cobra.Command {
	c := &cobra.Command{
		Use:   use + " <appeal-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *resolution.Service) error {
			ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

			appealID, err := parseIDArg(cmd, "appeal")
			if err != nil {
				return err
			}
			actor, err := parseActor(cmd)
			if err != nil {
				return err
			}

			res, err := remove(ctx, svc, app.Session(actor), appealID)
			if err != nil {
				return err
			}
			return writeJSON(cmd, res)
		}),
	}
	addActorFlag(c)
	return c
}

var appealCommentsCmd = &cobra.Command{
	Use:   "comments <appeal-id>",
	Short: "List an appeal's comments and recorded punishment changes",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *resolution.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		appealID, err := parseIDArg(cmd, "appeal")
		if err != nil {
			return err
		}
		comments, err := svc.AppealComments(ctx, appealID)
		if err != nil {
			return err
		}
		return writeJSON(cmd, comments)
	}),
}

func init() {
	updateMute := newAppealUpdateCmd("update-mute", "Edit the appealed mute and resolve the appeal",
		func(ctx context.Context, cmd *cobra.Command, svc *resolution.Service, session resolution.Session, appealID uint64, reason string, expires int64) (resolution.AppealResolution, error) {
			soft, _ := cmd.Flags().GetBool("soft")
			return svc.UpdateMuteFromAppeal(ctx, session, appealID, resolution.UpdateMuteInput{Reason: reason, Expires: expires, Soft: soft})
		})
	updateMute.Flags().Bool("soft", false, "Soft mute (only the muted player sees their messages)")
	_ = updateMute.MarkFlagRequired("soft")

	updateWarning := newAppealUpdateCmd("update-warning", "Edit the appealed warning and resolve the appeal",
		func(ctx context.Context, cmd *cobra.Command, svc *resolution.Service, session resolution.Session, appealID uint64, reason string, expires int64) (resolution.AppealResolution, error) {
			points, _ := cmd.Flags().GetInt("points")
			return svc.UpdateWarningFromAppeal(ctx, session, appealID, resolution.UpdateWarningInput{Reason: reason, Expires: expires, Points: points})
		})
	updateWarning.Flags().Int("points", 0, "Warning points")
	_ = updateWarning.MarkFlagRequired("points")

	updateBan := newAppealUpdateCmd("update-ban", "Edit the appealed ban and resolve the appeal",
		func(ctx context.Context, _ *cobra.Command, svc *resolution.Service, session resolution.Session, appealID uint64, reason string, expires int64) (resolution.AppealResolution, error) {
			return svc.UpdateBanFromAppeal(ctx, session, appealID, resolution.UpdateBanInput{Reason: reason, Expires: expires})
		})

	deleteMute := newAppealDeleteCmd("delete-mute", "Remove the appealed mute and resolve the appeal",
		func(ctx context.Context, svc *resolution.Service, session resolution.Session, appealID uint64) (resolution.AppealResolution, error) {
			return svc.DeleteMuteFromAppeal(ctx, session, appealID)
		})
	deleteWarning := newAppealDeleteCmd("delete-warning", "Remove the appealed warning and resolve the appeal",
		func(ctx context.Context, svc *resolution.Service, session resolution.Session, appealID uint64) (resolution.AppealResolution, error) {
			return svc.DeleteWarningFromAppeal(ctx, session, appealID)
		})
	deleteBan := newAppealDeleteCmd("delete-ban", "Remove the appealed ban and resolve the appeal",
		func(ctx context.Context, svc *resolution.Service, session resolution.Session, appealID uint64) (resolution.AppealResolution, error) {
			return svc.DeleteBanFromAppeal(ctx, session, appealID)
		})

	appealCmd.AddCommand(updateMute, updateWarning, updateBan, deleteMute, deleteWarning, deleteBan, appealCommentsCmd)
	rootCmd.AddCommand(appealCmd)
}
