package cmd

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newFlagTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	c := &cobra.Command{Use: "test"}
	addActorFlag(c)
	addPunishmentFlags(c)
	c.Flags().String("player", "", "")
	if err := c.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	return c
}

func TestResolveExpires(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	got, err := resolveExpires(newFlagTestCmd(t, "--expires", "1800000000"), now)
	if err != nil || got != 1_800_000_000 {
		t.Fatalf("resolveExpires(--expires) = %d, %v", got, err)
	}

	got, err = resolveExpires(newFlagTestCmd(t, "--expires", "0"), now)
	if err != nil || got != 0 {
		t.Fatalf("resolveExpires(--expires 0) = %d, %v, want permanent", got, err)
	}

	got, err = resolveExpires(newFlagTestCmd(t, "--for", "2h"), now)
	if err != nil || got != now.Add(2*time.Hour).Unix() {
		t.Fatalf("resolveExpires(--for) = %d, %v", got, err)
	}

	for _, args := range [][]string{
		{},
		{"--expires", "5", "--for", "2h"},
		{"--for=-1h"},
		{"--for", "0s"},
		{"--expires=-5"},
	} {
		if got, err := resolveExpires(newFlagTestCmd(t, args...), now); err == nil {
			t.Fatalf("resolveExpires(%v) = %d, expected error", args, got)
		}
	}
}

func TestUpdateCommandRejectsMissingAttributes(t *testing.T) {
	cases := []struct {
		args []string
		ok   bool
	}{
		{[]string{"--reason", "typo-fix"}, false},
		{[]string{"--expires", "0"}, false},
		{[]string{"--reason", "r", "--expires", "0", "--for", "1h"}, false},
		{[]string{"--reason", "r", "--expires", "0"}, true},
		{[]string{"--reason", "r", "--for", "1h"}, true},
	}
	for _, tc := range cases {
		c := newAppealUpdateCmd("update-ban", "", nil)
		if err := c.ParseFlags(tc.args); err != nil {
			t.Fatalf("ParseFlags(%v) error = %v", tc.args, err)
		}
		err := c.ValidateRequiredFlags()
		if err == nil {
			err = c.ValidateFlagGroups()
		}
		if tc.ok && err != nil {
			t.Fatalf("validate(%v) error = %v", tc.args, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("validate(%v) expected error", tc.args)
		}
	}
}

func TestVariantFlagsAreRequired(t *testing.T) {
	for _, tc := range []struct {
		path []string
		flag string
	}{
		{[]string{"appeal", "update-mute"}, "soft"},
		{[]string{"appeal", "update-warning"}, "points"},
		{[]string{"report", "warning"}, "points"},
		{[]string{"report", "mute"}, "reason"},
	} {
		found, _, err := rootCmd.Find(tc.path)
		if err != nil {
			t.Fatalf("Find(%v) error = %v", tc.path, err)
		}
		flag := found.Flags().Lookup(tc.flag)
		if flag == nil {
			t.Fatalf("%v has no --%s flag", tc.path, tc.flag)
		}
		if got := flag.Annotations[cobra.BashCompOneRequiredFlag]; len(got) != 1 || got[0] != "true" {
			t.Fatalf("%v --%s required annotation = %v", tc.path, tc.flag, got)
		}
	}
}

func TestParseActor(t *testing.T) {
	actor := uuid.New()

	got, err := parseActor(newFlagTestCmd(t, "--actor", actor.String()))
	if err != nil || got != actor {
		t.Fatalf("parseActor() = %s, %v", got, err)
	}

	got, err = parseActor(newFlagTestCmd(t))
	if err != nil || got != uuid.Nil {
		t.Fatalf("parseActor(empty) = %s, %v, want nil uuid", got, err)
	}

	if _, err := parseActor(newFlagTestCmd(t, "--actor", "not-a-uuid")); err == nil {
		t.Fatalf("parseActor(invalid) expected error")
	}
	if _, err := parseUUIDFlag(newFlagTestCmd(t), "player"); err == nil {
		t.Fatalf("parseUUIDFlag(empty) expected error")
	}
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"init-db"},
		{"appeal", "update-mute"},
		{"appeal", "update-warning"},
		{"appeal", "update-ban"},
		{"appeal", "delete-mute"},
		{"appeal", "delete-warning"},
		{"appeal", "delete-ban"},
		{"appeal", "comments"},
		{"report", "mute"},
		{"report", "warning"},
		{"report", "ban"},
		{"report", "commands"},
	} {
		found, _, err := rootCmd.Find(path)
		if err != nil || found == rootCmd {
			t.Fatalf("Find(%v) = %v, %v", path, found, err)
		}
	}
}
