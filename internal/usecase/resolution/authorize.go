package resolution

import (
	"modpanel/internal/domain/moderation"
	"modpanel/internal/ports"
)

// appealAllowed requires both the appeal workflow rule and the punishment rule.
func appealAllowed(session Session, appeal ports.Appeal, punishment ports.Punishment, punishmentRule moderation.Rule) bool {
	canResolve := moderation.Allowed(session.ACL, appeal.ServerID, moderation.AppealStateRule, moderation.Relations{
		Actor:    appeal.ActorID,
		Assignee: appeal.AssigneeID,
	})
	canChange := moderation.Allowed(session.ACL, appeal.ServerID, punishmentRule, moderation.Relations{
		Actor: punishment.ActorID,
	})
	return canResolve && canChange
}

func reportAllowed(session Session, report ports.Report) bool {
	return moderation.Allowed(session.ACL, report.ServerID, moderation.ReportStateRule, moderation.Relations{
		Actor:    report.ActorID,
		Assignee: report.AssigneeID,
		Reported: report.PlayerID,
	})
}
