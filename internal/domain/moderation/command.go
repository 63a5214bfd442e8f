package moderation

import (
	"fmt"
	"strings"
	"time"
)

// Command is the textual punishment action consumed by the in-game command executor.
type Command struct {
	Name string
	Args string
}

var commandVerbs = map[PunishmentKind][2]string{
	KindMute:    {"mute", "tempmute"},
	KindWarning: {"warn", "tempwarn"},
	KindBan:     {"ban", "tempban"},
}

// CommandRequest describes a punishment created from a report.
type CommandRequest struct {
	Kind       PunishmentKind
	PlayerName string
	Reason     string
	Expires    int64
	Points     int
}

// BuildCommand renders req as "<verb> <name> [<duration>] <reason>". Permanent
// punishments use the plain verb; temporary ones use the temp verb and carry
// the remaining duration relative to now.
func BuildCommand(now time.Time, req CommandRequest) (Command, error) {
	verbs, ok := commandVerbs[req.Kind]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownPunishmentType, req.Kind)
	}

	reason := req.Reason
	if req.Kind == KindWarning && req.Points > 1 {
		reason = fmt.Sprintf("-p %d %s", req.Points, reason)
	}

	if IsPermanent(req.Expires) {
		return Command{
			Name: verbs[0],
			Args: joinArgs(req.PlayerName, reason),
		}, nil
	}

	return Command{
		Name: verbs[1],
		Args: joinArgs(req.PlayerName, FormatDistanceAbbr(now, req.Expires), reason),
	}, nil
}

func joinArgs(parts ...string) string {
	return strings.Join(parts, " ")
}
