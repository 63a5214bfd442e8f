package cmd

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"modpanel/internal/errs"
)

func addActorFlag(cmd *cobra.Command) {
	cmd.Flags().String("actor", "", "Acting player id (uuid)")
}

// addPunishmentFlags registers the attributes every punishment write sets in
// full. Omitted values would overwrite stored ones, so none of them default.
func addPunishmentFlags(cmd *cobra.Command) {
	cmd.Flags().String("reason", "", "Punishment reason")
	cmd.Flags().Int64("expires", 0, "Expiry as a unix timestamp, 0 for permanent")
	cmd.Flags().Duration("for", 0, "Expiry relative to now")
	_ = cmd.MarkFlagRequired("reason")
	cmd.MarkFlagsOneRequired("expires", "for")
	cmd.MarkFlagsMutuallyExclusive("expires", "for")
}

func parseActor(cmd *cobra.Command) (uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString("actor")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, nil
	}
	actor, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.Wrapf(err, "parse --actor %q", raw)
	}
	return actor, nil
}

func parseUUIDFlag(cmd *cobra.Command, name string) (uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString(name)
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, errs.Wrapf(err, "parse --%s %q", name, raw)
	}
	return id, nil
}

// resolveExpires reads exactly one of --expires or --for.
func resolveExpires(cmd *cobra.Command, now time.Time) (int64, error) {
	absolute := cmd.Flags().Changed("expires")
	relative := cmd.Flags().Changed("for")
	switch {
	case absolute && relative:
		return 0, errors.New("--expires and --for are mutually exclusive")
	case !absolute && !relative:
		return 0, errors.New("one of --expires or --for is required")
	case relative:
		d, _ := cmd.Flags().GetDuration("for")
		if d <= 0 {
			return 0, errors.New("--for must be positive")
		}
		return now.Add(d).Unix(), nil
	}

	expires, _ := cmd.Flags().GetInt64("expires")
	if expires < 0 {
		return 0, errors.New("--expires must not be negative")
	}
	return expires, nil
}

func parseIDArg(cmd *cobra.Command, what string) (uint64, error) {
	raw := cmd.Flags().Arg(0)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errs.Wrapf(err, "parse %s id %q", what, raw)
	}
	return id, nil
}

func writeJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return errs.Wrap(err, "write json output")
	}
	return nil
}
