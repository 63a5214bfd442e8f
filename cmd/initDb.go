/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"modpanel/internal/bootstrap"
	"modpanel/internal/bootstrap/logging"
	"modpanel/internal/errs"
	"modpanel/internal/usecase/resolution"
)

// initDbCmd represents the initDb command
var initDbCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Initialize the central and server store schemas",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, _ *resolution.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		logging.Info(ctx, "start init-db")

		if err := app.InitSchema(ctx); err != nil {
			logging.Error(ctx, "initialize schema failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "initialize schema")
		}

		servers := app.Servers.IDs()
		logging.Info(ctx, "init-db finished", slog.Int("servers", len(servers)))
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "schema initialized: central + %d server store(s) %v\n", len(servers), servers); err != nil {
			return errs.Wrap(err, "write init-db output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(initDbCmd)
}
