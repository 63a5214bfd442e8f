package moderation

import "github.com/google/uuid"

// Permissions is the slice of an access-control evaluator the authorization
// formula needs. It is satisfied by ports.AccessControl.
type Permissions interface {
	HasServerPermission(serverID string, resource string, action string) bool
	Owns(actorID uuid.UUID) bool
}

// Scope is a relationship scope suffix appended to a rule's action.
type Scope string

const (
	ScopeAny      Scope = "any"
	ScopeOwn      Scope = "own"
	ScopeAssigned Scope = "assigned"
	ScopeReported Scope = "reported"
)

// Rule names an ACL resource and the action prefix that scopes are appended to,
// for example {"player.appeals", "update.state"} → "update.state.own".
type Rule struct {
	Resource string
	Action   string
}

func (r Rule) action(scope Scope) string {
	return r.Action + "." + string(scope)
}

// Relations carries the record's relationship columns. A uuid.Nil field means
// the relationship does not apply to the record and its predicate is skipped.
type Relations struct {
	Actor    uuid.UUID
	Assignee uuid.UUID
	Reported uuid.UUID
}

// Allowed evaluates
//
//	any OR (own AND owns(actor)) OR (assigned AND owns(assignee)) OR (reported AND owns(player))
//
// for rule on serverID.
func Allowed(p Permissions, serverID string, rule Rule, rel Relations) bool {
	if p == nil {
		return false
	}
	if p.HasServerPermission(serverID, rule.Resource, rule.action(ScopeAny)) {
		return true
	}

	scoped := []struct {
		scope Scope
		owner uuid.UUID
	}{
		{ScopeOwn, rel.Actor},
		{ScopeAssigned, rel.Assignee},
		{ScopeReported, rel.Reported},
	}
	for _, s := range scoped {
		if s.owner == uuid.Nil {
			continue
		}
		if p.HasServerPermission(serverID, rule.Resource, rule.action(s.scope)) && p.Owns(s.owner) {
			return true
		}
	}
	return false
}

// Rules used by the resolving operations.
var (
	AppealStateRule = Rule{Resource: "player.appeals", Action: "update.state"}
	ReportStateRule = Rule{Resource: "player.reports", Action: "update.state"}
)

// PunishmentUpdateRule guards editing an existing punishment of kind.
func PunishmentUpdateRule(kind PunishmentKind) Rule {
	return Rule{Resource: kind.Resource(), Action: "update"}
}

// PunishmentDeleteRule guards removing an existing punishment of kind.
func PunishmentDeleteRule(kind PunishmentKind) Rule {
	return Rule{Resource: kind.Resource(), Action: "delete"}
}
