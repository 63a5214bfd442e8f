package ports

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("record not found")

// ConflictKind classifies a write rejected by a store constraint.
type ConflictKind int

const (
	ConflictDuplicateKey ConflictKind = iota + 1
	ConflictForeignKey
)

func (k ConflictKind) String() string {
	switch k {
	case ConflictDuplicateKey:
		return "duplicate_key"
	case ConflictForeignKey:
		return "foreign_key"
	default:
		return fmt.Sprintf("ConflictKind(%d)", int(k))
	}
}

// ConflictError is returned by repositories when a write violates a constraint.
type ConflictError struct {
	Kind ConflictKind
	Err  error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("store conflict (%s): %v", e.Kind, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// ConflictOf extracts the conflict classification from err.
func ConflictOf(err error) (ConflictKind, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}
