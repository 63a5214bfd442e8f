package moderation

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPunishmentType = errors.New("unknown punishment type")
	ErrInvalidCommentType    = errors.New("invalid comment type")
)

const (
	msgServerNotFound    = "Server does not exist"
	msgPunishmentGone    = "Punishment associated with this appeal no longer exists"
	msgPermissionDenied  = "You do not have permission to perform this action, please contact your server administrator"
	msgAlreadyMuted      = "Player already muted on selected server, please unmute first"
	msgAlreadyBanned     = "Player already banned on selected server, please unban first"
	msgAppealNotFoundFmt = "Appeal %d does not exist"
	msgReportNotFoundFmt = "Report %d does not exist"
)

// ExposedError is a domain error whose message is safe to return to the caller verbatim.
type ExposedError struct {
	Message string
}

func (e *ExposedError) Error() string { return e.Message }

func exposed(msg string) error {
	return &ExposedError{Message: msg}
}

// IsExposed reports whether err carries a user-facing message.
func IsExposed(err error) bool {
	var ee *ExposedError
	return errors.As(err, &ee)
}

func AppealNotFound(id uint64) error {
	return exposed(fmt.Sprintf(msgAppealNotFoundFmt, id))
}

func ReportNotFound(id uint64) error {
	return exposed(fmt.Sprintf(msgReportNotFoundFmt, id))
}

func ServerNotFound() error {
	return exposed(msgServerNotFound)
}

func PunishmentGone() error {
	return exposed(msgPunishmentGone)
}

// PermissionDenied never says which predicate failed.
func PermissionDenied() error {
	return exposed(msgPermissionDenied)
}

// AlreadyPunished is returned when a server store rejects a second active
// punishment of kind for the same player. Warnings have no such constraint.
func AlreadyPunished(kind PunishmentKind) error {
	switch kind {
	case KindMute:
		return exposed(msgAlreadyMuted)
	case KindBan:
		return exposed(msgAlreadyBanned)
	default:
		return exposed(fmt.Sprintf("Player already has an active %s on selected server", kind))
	}
}

// IsPermissionDenied reports whether err is the canonical permission error.
func IsPermissionDenied(err error) bool {
	var ee *ExposedError
	return errors.As(err, &ee) && ee.Message == msgPermissionDenied
}
