package acl

import (
	"strings"

	"github.com/google/uuid"

	"modpanel/internal/ports"
)

const wildcard = "*"

// Grants maps an actor id to its "server:resource:action" grant strings.
// Any segment may be "*".
type Grants map[string][]string

type grant struct {
	server   string
	resource string
	action   string
}

func parseGrant(raw string) (grant, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 3 {
		return grant{}, false
	}
	for _, p := range parts {
		if p == "" {
			return grant{}, false
		}
	}
	return grant{server: parts[0], resource: parts[1], action: parts[2]}, true
}

func (g grant) matches(serverID string, resource string, action string) bool {
	return segmentMatches(g.server, serverID) &&
		segmentMatches(g.resource, resource) &&
		segmentMatches(g.action, action)
}

func segmentMatches(pattern string, value string) bool {
	return pattern == wildcard || pattern == value
}

// Static is an AccessControl for one authenticated actor, evaluated against
// grants loaded from configuration.
type Static struct {
	actor  uuid.UUID
	grants []grant
}

var _ ports.AccessControl = (*Static)(nil)

// ForActor resolves the grants of actor. Malformed grant strings are skipped.
func (g Grants) ForActor(actor uuid.UUID) *Static {
	s := &Static{actor: actor}
	if actor == uuid.Nil {
		return s
	}
	for key, list := range g {
		id, err := uuid.Parse(strings.TrimSpace(key))
		if err != nil || id != actor {
			continue
		}
		for _, raw := range list {
			if parsed, ok := parseGrant(raw); ok {
				s.grants = append(s.grants, parsed)
			}
		}
	}
	return s
}

func (s *Static) HasServerPermission(serverID string, resource string, action string) bool {
	for _, g := range s.grants {
		if g.matches(serverID, resource, action) {
			return true
		}
	}
	return false
}

func (s *Static) Owns(actorID uuid.UUID) bool {
	return s.actor != uuid.Nil && s.actor == actorID
}
