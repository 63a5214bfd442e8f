package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"modpanel/internal/bootstrap"
	"modpanel/internal/bootstrap/logging"
	"modpanel/internal/ports"
	"modpanel/internal/usecase/resolution"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Resolve reports by punishing the reported player",
}

type reportPunish func(ctx context.Context, cmd *cobra.Command, svc *resolution.Service, session resolution.Session, reportID uint64, serverID string, player uuid.UUID, reason string, expires int64) (ports.Report, error)

func newReportCmd(use string, short string, punish reportPunish) *cobra.Command {
	c := &cobra.Command{
		Use:   use + " <report-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *resolution.Service) error {
			ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

			reportID, err := parseIDArg(cmd, "report")
			if err != nil {
				return err
			}
			actor, err := parseActor(cmd)
			if err != nil {
				return err
			}
			player, err := parseUUIDFlag(cmd, "player")
			if err != nil {
				return err
			}
			expires, err := resolveExpires(cmd, time.Now())
			if err != nil {
				return err
			}
			serverID, _ := cmd.Flags().GetString("server")
			reason, _ := cmd.Flags().GetString("reason")

			report, err := punish(ctx, cmd, svc, app.Session(actor), reportID, serverID, player, reason, expires)
			if err != nil {
				return err
			}
			return writeJSON(cmd, report)
		}),
	}
	addActorFlag(c)
	addPunishmentFlags(c)
	c.Flags().String("server", "", "Server id the report belongs to")
	c.Flags().String("player", "", "Reported player id (uuid)")
	_ = c.MarkFlagRequired("server")
	_ = c.MarkFlagRequired("player")
	return c
}

var reportCommandsCmd = &cobra.Command{
	Use:   "commands <report-id>",
	Short: "List the in-game commands recorded for a report",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *resolution.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		reportID, err := parseIDArg(cmd, "report")
		if err != nil {
			return err
		}
		commands, err := svc.ReportCommands(ctx, reportID)
		if err != nil {
			return err
		}
		return writeJSON(cmd, commands)
	}),
}

func init() {
	mute := newReportCmd("mute", "Mute the reported player and resolve the report",
		func(ctx context.Context, cmd *cobra.Command, svc *resolution.Service, session resolution.Session, reportID uint64, serverID string, player uuid.UUID, reason string, expires int64) (ports.Report, error) {
			soft, _ := cmd.Flags().GetBool("soft")
			return svc.ResolveReportMute(ctx, session, reportID, serverID, resolution.ReportMuteInput{Player: player, Reason: reason, Expires: expires, Soft: soft})
		})
	mute.Flags().Bool("soft", false, "Soft mute (only the muted player sees their messages)")

	warning := newReportCmd("warning", "Warn the reported player and resolve the report",
		func(ctx context.Context, cmd *cobra.Command, svc *resolution.Service, session resolution.Session, reportID uint64, serverID string, player uuid.UUID, reason string, expires int64) (ports.Report, error) {
			points, _ := cmd.Flags().GetInt("points")
			return svc.ResolveReportWarning(ctx, session, reportID, serverID, resolution.ReportWarningInput{Player: player, Reason: reason, Expires: expires, Points: points})
		})
	warning.Flags().Int("points", 0, "Warning points")
	_ = warning.MarkFlagRequired("points")

	ban := newReportCmd("ban", "Ban the reported player and resolve the report",
		func(ctx context.Context, _ *cobra.Command, svc *resolution.Service, session resolution.Session, reportID uint64, serverID string, player uuid.UUID, reason string, expires int64) (ports.Report, error) {
			return svc.ResolveReportBan(ctx, session, reportID, serverID, resolution.ReportBanInput{Player: player, Reason: reason, Expires: expires})
		})

	reportCmd.AddCommand(mute, warning, ban, reportCommandsCmd)
	rootCmd.AddCommand(reportCmd)
}
