package ports

import "github.com/google/uuid"

// AccessControl evaluates the current caller's ACL. It is request scoped.
type AccessControl interface {
	HasServerPermission(serverID string, resource string, action string) bool
	// Owns reports whether actorID is the current caller.
	Owns(actorID uuid.UUID) bool
}
