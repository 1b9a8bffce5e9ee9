package models

// Status is the lifecycle tag shared by posts, comments and sub-comments.
// It controls both visibility and mutability.
type Status string

const (
	// StatusOpen entities are visible and fully mutable by their creator.
	StatusOpen Status = "Open"
	// StatusLocked entities stay visible but their content is frozen; the
	// creator may still remove them.
	StatusLocked Status = "Locked"
	// StatusRemoved entities are hidden from every read path. Terminal.
	StatusRemoved Status = "Removed"
)

// ParseStatus maps a status name onto its lifecycle state. Names are
// case-sensitive; anything outside the three states is invalid.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusOpen, StatusLocked, StatusRemoved:
		return Status(s), true
	default:
		return "", false
	}
}

// CanTransition reports whether the lifecycle permits moving from the
// current state to the requested one. Requesting the current state again is
// only a transition in the Open state; Locked entities accept Removed and
// nothing else, and Removed is terminal.
func (s Status) CanTransition(to Status) bool {
	switch s {
	case StatusOpen:
		return to == StatusOpen || to == StatusLocked || to == StatusRemoved
	case StatusLocked:
		return to == StatusRemoved
	default:
		return false
	}
}

// Visible reports whether read paths include the entity.
func (s Status) Visible() bool {
	return s != StatusRemoved
}
