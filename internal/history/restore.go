package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/dewakost/dewakost/internal/domain"
)

var (
	ErrEntryNotFound   = errors.New("history entry not found")
	ErrNotRestorable   = errors.New("history entry cannot be restored")
	ErrMissingSnapshot = fmt.Errorf("%w: entry has no previous state", ErrNotRestorable)
)

// RestoreResult is the state after reversing one entry
type RestoreResult struct {
	Kosts []domain.Kost
	Log   []domain.LogEntry

	// Entry is the new restore record at the head of Log
	Entry domain.LogEntry
}

// Restore reverses the entry identified by entryID. The inputs are never
// modified. Restore records and already restored entries are rejected before
// anything else happens.
func Restore(kosts []domain.Kost, log []domain.LogEntry, entryID string, actor *domain.Account, now time.Time) (*RestoreResult, error) {
	idx := -1
	for i := range log {
		if log[i].ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrEntryNotFound
	}

	target := log[idx]
	if !target.CanRestore() {
		if target.IsRestored {
			return nil, fmt.Errorf("%w: already restored", ErrNotRestorable)
		}
		return nil, fmt.Errorf("%w: %q entries are final", ErrNotRestorable, target.Action)
	}

	next, name, err := reverse(kosts, target)
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Reverted '%s' on %q", target.Action, target.KostName)
	entry := Record(domain.ActionRestore, target.KostID, name, details, nil, actor, now)

	updated := make([]domain.LogEntry, 0, len(log)+1)
	updated = append(updated, entry)
	for i, e := range log {
		if i == idx {
			e.IsRestored = true
		}
		updated = append(updated, e)
	}

	return &RestoreResult{Kosts: next, Log: updated, Entry: entry}, nil
}

// reverse applies the inverse of e and returns the collection plus the name
// the restore record should carry.
func reverse(kosts []domain.Kost, e domain.LogEntry) ([]domain.Kost, string, error) {
	name := e.KostName

	switch e.Action {
	case domain.ActionCreate:
		return without(kosts, e.KostID), name, nil

	case domain.ActionUpdate:
		if e.PreviousState == nil {
			return nil, "", ErrMissingSnapshot
		}
		prev := e.PreviousState.Clone()
		return mapKost(kosts, e.KostID, func(domain.Kost) domain.Kost { return prev }), prev.Name, nil

	case domain.ActionDelete:
		if e.PreviousState == nil {
			return nil, "", ErrMissingSnapshot
		}
		prev := e.PreviousState.Clone()
		out := cloneAll(kosts)
		if indexOf(out, prev.ID) >= 0 {
			// Ids are never reused, so a live record means this was already
			// undone. The entry is still marked restored and a restore entry
			// is written.
			return out, name, nil
		}
		return append(out, prev), prev.Name, nil

	case domain.ActionArchive, domain.ActionUnarchive:
		// archive means "became archived", so undoing it makes the listing visible again
		archived := e.Action == domain.ActionUnarchive
		out := mapKost(kosts, e.KostID, func(k domain.Kost) domain.Kost {
			k.IsArchived = archived
			return k
		})
		if i := indexOf(out, e.KostID); i >= 0 {
			name = out[i].Name
		}
		return out, name, nil

	case domain.ActionRestore:
		return nil, "", fmt.Errorf("%w: restore entries are final", ErrNotRestorable)

	default:
		return nil, "", fmt.Errorf("%w: unknown action %q", ErrNotRestorable, e.Action)
	}
}

func cloneAll(kosts []domain.Kost) []domain.Kost {
	out := make([]domain.Kost, len(kosts))
	for i, k := range kosts {
		out[i] = k.Clone()
	}
	return out
}

func without(kosts []domain.Kost, id string) []domain.Kost {
	out := make([]domain.Kost, 0, len(kosts))
	for _, k := range kosts {
		if k.ID != id {
			out = append(out, k.Clone())
		}
	}
	return out
}

// mapKost applies fn to the record with the given id. A missing id leaves
// the collection unchanged.
func mapKost(kosts []domain.Kost, id string, fn func(domain.Kost) domain.Kost) []domain.Kost {
	out := cloneAll(kosts)
	for i := range out {
		if out[i].ID == id {
			out[i] = fn(out[i])
		}
	}
	return out
}

func indexOf(kosts []domain.Kost, id string) int {
	for i := range kosts {
		if kosts[i].ID == id {
			return i
		}
	}
	return -1
}
