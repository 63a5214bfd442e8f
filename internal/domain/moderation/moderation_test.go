package moderation

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type grantSet struct {
	actor  uuid.UUID
	grants map[string]struct{}
}

func newGrantSet(actor uuid.UUID, grants ...string) grantSet {
	set := grantSet{actor: actor, grants: make(map[string]struct{}, len(grants))}
	for _, g := range grants {
		set.grants[g] = struct{}{}
	}
	return set
}

func (g grantSet) HasServerPermission(serverID string, resource string, action string) bool {
	_, ok := g.grants[serverID+":"+resource+":"+action]
	return ok
}

func (g grantSet) Owns(actorID uuid.UUID) bool {
	return actorID != uuid.Nil && actorID == g.actor
}

func TestAllowedRelationshipScopes(t *testing.T) {
	me := uuid.New()
	other := uuid.New()

	cases := []struct {
		name  string
		grant string
		rel   Relations
		want  bool
	}{
		{"any", "s1:player.reports:update.state.any", Relations{Actor: other}, true},
		{"own matches", "s1:player.reports:update.state.own", Relations{Actor: me}, true},
		{"own mismatch", "s1:player.reports:update.state.own", Relations{Actor: other}, false},
		{"assigned matches", "s1:player.reports:update.state.assigned", Relations{Actor: other, Assignee: me}, true},
		{"assigned without assignee", "s1:player.reports:update.state.assigned", Relations{Actor: other}, false},
		{"reported matches", "s1:player.reports:update.state.reported", Relations{Actor: other, Reported: me}, true},
		{"reported not applicable", "s1:player.reports:update.state.reported", Relations{Actor: other}, false},
		{"other server", "s2:player.reports:update.state.any", Relations{Actor: me}, false},
		{"no grant", "", Relations{Actor: me, Assignee: me, Reported: me}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			perms := newGrantSet(me, tc.grant)
			if got := Allowed(perms, "s1", ReportStateRule, tc.rel); got != tc.want {
				t.Fatalf("Allowed() = %v, want %v", got, tc.want)
			}
		})
	}

	if Allowed(nil, "s1", ReportStateRule, Relations{Actor: me}) {
		t.Fatalf("Allowed(nil) expected false")
	}
}

func TestPunishmentRules(t *testing.T) {
	if got := PunishmentUpdateRule(KindMute).action(ScopeOwn); got != "update.own" {
		t.Fatalf("update rule action = %q", got)
	}
	if got := PunishmentDeleteRule(KindWarning); got.Resource != "player.warnings" || got.Action != "delete" {
		t.Fatalf("delete rule = %#v", got)
	}
}

func TestParseAppealType(t *testing.T) {
	kind, err := ParseAppealType("PlayerMute")
	if err != nil {
		t.Fatalf("ParseAppealType() error = %v", err)
	}
	if kind != KindMute {
		t.Fatalf("ParseAppealType() = %q", kind)
	}

	_, err = ParseAppealType("PlayerKick")
	if !errors.Is(err, ErrUnknownPunishmentType) {
		t.Fatalf("ParseAppealType() error = %v, want ErrUnknownPunishmentType", err)
	}
}

func TestComputeDiffOnlyChangedAttributes(t *testing.T) {
	softOld, softNew := true, true
	d := ComputeDiff(
		Attributes{Reason: "spam", Expires: 100, Soft: &softOld},
		Attributes{Reason: "flood", Expires: 100, Soft: &softNew},
	)
	if d.Reason == nil || d.Reason.Old != "spam" || d.Reason.New != "flood" {
		t.Fatalf("reason change = %#v", d.Reason)
	}
	if d.Expires != nil || d.Soft != nil || d.Points != nil {
		t.Fatalf("unexpected changes = %v", d.Changed())
	}

	off := false
	d = ComputeDiff(Attributes{Soft: &softOld}, Attributes{Soft: &off})
	if d.Soft == nil || d.Soft.Old != true || d.Soft.New != false {
		t.Fatalf("soft change = %#v", d.Soft)
	}

	points := 2
	d = ComputeDiff(Attributes{}, Attributes{Points: &points})
	if !d.Empty() {
		t.Fatalf("inapplicable points compared: %v", d.Changed())
	}
}

func TestTruthyNormalisesStoredFlags(t *testing.T) {
	if Truthy(0) || !Truthy(1) || !Truthy(2) {
		t.Fatalf("Truthy() normalisation mismatch")
	}
	if FlagValue(true) != 1 || FlagValue(false) != 0 {
		t.Fatalf("FlagValue() mismatch")
	}
}

func TestFormatDistanceAbbr(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cases := map[time.Duration]string{
		45 * time.Second:    "45s",
		30 * time.Minute:    "30m",
		2 * time.Hour:       "2h",
		3 * 24 * time.Hour:  "3d",
		14 * 24 * time.Hour: "2w",
		60 * 24 * time.Hour: "2mo",
	}
	for offset, want := range cases {
		if got := FormatDistanceAbbr(now, now.Add(offset).Unix()); got != want {
			t.Fatalf("FormatDistanceAbbr(+%s) = %q, want %q", offset, got, want)
		}
	}
}

func TestBuildCommand(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	temp := now.Add(2 * time.Hour).Unix()

	cases := []struct {
		name string
		req  CommandRequest
		want Command
	}{
		{"permanent mute", CommandRequest{Kind: KindMute, PlayerName: "Steve", Reason: "spam"}, Command{"mute", "Steve spam"}},
		{"temp mute", CommandRequest{Kind: KindMute, PlayerName: "Steve", Reason: "spam", Expires: temp}, Command{"tempmute", "Steve 2h spam"}},
		{"single point warning", CommandRequest{Kind: KindWarning, PlayerName: "Alex", Reason: "rude", Points: 1}, Command{"warn", "Alex rude"}},
		{"multi point warning", CommandRequest{Kind: KindWarning, PlayerName: "Alex", Reason: "rude", Points: 3, Expires: temp}, Command{"tempwarn", "Alex 2h -p 3 rude"}},
		{"permanent ban", CommandRequest{Kind: KindBan, PlayerName: "Alex", Reason: "xray"}, Command{"ban", "Alex xray"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BuildCommand(now, tc.req)
			if err != nil {
				t.Fatalf("BuildCommand() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("BuildCommand() = %#v, want %#v", got, tc.want)
			}
		})
	}

	if _, err := BuildCommand(now, CommandRequest{Kind: "kick"}); !errors.Is(err, ErrUnknownPunishmentType) {
		t.Fatalf("BuildCommand(kick) error = %v", err)
	}
}

func TestExposedErrorMessages(t *testing.T) {
	if got := AppealNotFound(123123).Error(); got != "Appeal 123123 does not exist" {
		t.Fatalf("AppealNotFound() = %q", got)
	}
	if got := ReportNotFound(7).Error(); got != "Report 7 does not exist" {
		t.Fatalf("ReportNotFound() = %q", got)
	}
	if got := AlreadyPunished(KindMute).Error(); got != "Player already muted on selected server, please unmute first" {
		t.Fatalf("AlreadyPunished(mute) = %q", got)
	}
	if !IsExposed(PermissionDenied()) {
		t.Fatalf("PermissionDenied() expected exposed")
	}
	if IsExposed(errors.New("boom")) {
		t.Fatalf("plain error reported as exposed")
	}
}
