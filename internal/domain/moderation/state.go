package moderation

import "fmt"

// State is the workflow state shared by appeals and reports.
type State uint8

const (
	StateOpen     State = 1
	StateAssigned State = 2
	StateResolved State = 3
	StateRejected State = 4
)

var stateNames = map[State]string{
	StateOpen:     "Open",
	StateAssigned: "Assigned",
	StateResolved: "Resolved",
	StateRejected: "Rejected",
}

func (s State) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// CommentType is the closed set of appeal comment kinds.
type CommentType string

const (
	CommentTypeComment          CommentType = "comment"
	CommentTypeAssigned         CommentType = "assigned"
	CommentTypeState            CommentType = "state"
	CommentTypeEditPunishment   CommentType = "editpunishment"
	CommentTypeDeletePunishment CommentType = "deletepunishment"
)

var commentTypes = map[CommentType]struct{}{
	CommentTypeComment:          {},
	CommentTypeAssigned:         {},
	CommentTypeState:            {},
	CommentTypeEditPunishment:   {},
	CommentTypeDeletePunishment: {},
}

// ParseCommentType validates a stored comment type.
func ParseCommentType(value string) (CommentType, error) {
	t := CommentType(value)
	if _, ok := commentTypes[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidCommentType, value)
	}
	return t, nil
}
