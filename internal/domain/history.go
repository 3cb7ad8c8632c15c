package domain

import "time"

// Action tags what a history entry recorded
type Action string

const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionArchive   Action = "archive"
	ActionUnarchive Action = "unarchive"
	ActionRestore   Action = "restore"
)

// Label returns the human-readable action title
func (a Action) Label() string {
	switch a {
	case ActionCreate:
		return "Property created"
	case ActionUpdate:
		return "Property updated"
	case ActionDelete:
		return "Property deleted"
	case ActionArchive:
		return "Property archived"
	case ActionUnarchive:
		return "Property unarchived"
	case ActionRestore:
		return "Action reverted"
	default:
		return string(a)
	}
}

// Reversible returns true for actions the restore engine knows how to undo.
// Restore entries are terminal.
func (a Action) Reversible() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionArchive, ActionUnarchive:
		return true
	default:
		return false
	}
}

// LogEntry is one record of the activity history. Entries are immutable
// except for IsRestored, which flips once and never back.
type LogEntry struct {
	ID            string    `json:"id"`
	Action        Action    `json:"action"`
	KostID        string    `json:"kostId"`
	KostName      string    `json:"kostName"`
	Timestamp     time.Time `json:"timestamp"`
	Details       string    `json:"details,omitempty"`
	PreviousState *Kost     `json:"previousState,omitempty"`
	IsRestored    bool      `json:"isRestored,omitempty"`

	// Attribution, empty when recorded without an actor
	AccountID string `json:"accountId,omitempty"`
	Username  string `json:"username,omitempty"`
}

// CanRestore returns true if the entry may still be reversed
func (e *LogEntry) CanRestore() bool {
	return !e.IsRestored && e.Action.Reversible()
}
