package moderation

import (
	"fmt"
	"strings"
)

// PunishmentKind is the closed set of punishment variants held in a server store.
type PunishmentKind string

const (
	KindMute    PunishmentKind = "mute"
	KindWarning PunishmentKind = "warning"
	KindBan     PunishmentKind = "ban"
)

var punishmentKinds = map[PunishmentKind]struct {
	resource   string
	appealType string
}{
	KindMute:    {resource: "player.mutes", appealType: "PlayerMute"},
	KindWarning: {resource: "player.warnings", appealType: "PlayerWarning"},
	KindBan:     {resource: "player.bans", appealType: "PlayerBan"},
}

func (k PunishmentKind) Valid() bool {
	_, ok := punishmentKinds[k]
	return ok
}

// Resource is the ACL resource guarding punishments of this kind.
func (k PunishmentKind) Resource() string {
	return punishmentKinds[k].resource
}

// AppealType is the value stored in an appeal's punishment_type column.
func (k PunishmentKind) AppealType() string {
	return punishmentKinds[k].appealType
}

// ParseAppealType maps an appeal punishment_type column value to its kind.
func ParseAppealType(value string) (PunishmentKind, error) {
	trimmed := strings.TrimSpace(value)
	for kind, meta := range punishmentKinds {
		if meta.appealType == trimmed {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPunishmentType, value)
}

// PermanentExpiry is the expires value of a punishment that never lapses.
const PermanentExpiry int64 = 0

func IsPermanent(expires int64) bool {
	return expires == PermanentExpiry
}
