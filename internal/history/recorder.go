// Package history records reversible log entries for kost mutations and
// replays their inverse. Everything here is pure: callers own persistence.
package history

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dewakost/dewakost/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rupiahPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount the way Indonesian listings show prices, e.g. "Rp 1.200.000"
func FormatRupiah(amount int64) string {
	return "Rp " + rupiahPrinter.Sprintf("%d", amount)
}

// Record builds a log entry for a completed mutation. actor may be nil, in
// which case the entry is unattributed.
func Record(action domain.Action, kostID, kostName, details string, previous *domain.Kost, actor *domain.Account, now time.Time) domain.LogEntry {
	entry := domain.LogEntry{
		ID:        domain.NewID(),
		Action:    action,
		KostID:    kostID,
		KostName:  kostName,
		Timestamp: now.UTC(),
		Details:   details,
	}
	if previous != nil {
		snapshot := previous.Clone()
		entry.PreviousState = &snapshot
	}
	if actor != nil {
		entry.AccountID = actor.ID
		entry.Username = actor.Username
	}
	return entry
}

// RecordCreate logs a new listing. Undo deletes it, so no snapshot is kept.
func RecordCreate(created domain.Kost, actor *domain.Account, now time.Time) domain.LogEntry {
	return Record(domain.ActionCreate, created.ID, created.Name, "Added a new property.", nil, actor, now)
}

// RecordUpdate compares old against updated and returns nil when no tracked
// field changed.
func RecordUpdate(old, updated domain.Kost, actor *domain.Account, now time.Time) *domain.LogEntry {
	changes := Diff(old, updated)
	if len(changes) == 0 {
		return nil
	}
	details := "Updated " + strings.Join(changes, ", ") + "."
	entry := Record(domain.ActionUpdate, old.ID, old.Name, details, &old, actor, now)
	return &entry
}

// RecordDelete logs a removal with the full record so it can be re-inserted
func RecordDelete(removed domain.Kost, actor *domain.Account, now time.Time) domain.LogEntry {
	return Record(domain.ActionDelete, removed.ID, removed.Name, "", &removed, actor, now)
}

// RecordToggleArchive logs the archive flag flip. before is the record prior
// to toggling: an archived listing becomes visible (unarchive) and vice versa.
func RecordToggleArchive(before domain.Kost, actor *domain.Account, now time.Time) domain.LogEntry {
	action := domain.ActionArchive
	if before.IsArchived {
		action = domain.ActionUnarchive
	}
	return Record(action, before.ID, before.Name, "", nil, actor, now)
}

// Prepend returns a new log with entry in front
func Prepend(log []domain.LogEntry, entry domain.LogEntry) []domain.LogEntry {
	out := make([]domain.LogEntry, 0, len(log)+1)
	out = append(out, entry)
	return append(out, log...)
}

// Diff lists the tracked fields that differ between old and updated, in the
// order they appear in the summary.
func Diff(old, updated domain.Kost) []string {
	var changes []string
	if old.PricePerMonth != updated.PricePerMonth {
		changes = append(changes, fmt.Sprintf("price from %s to %s",
			FormatRupiah(old.PricePerMonth), FormatRupiah(updated.PricePerMonth)))
	}
	if old.Name != updated.Name {
		changes = append(changes, "name")
	}
	if old.Area != updated.Area {
		changes = append(changes, "area")
	}
	if old.Address != updated.Address {
		changes = append(changes, "address")
	}
	if old.Description != updated.Description {
		changes = append(changes, "description")
	}
	if old.Gender != updated.Gender {
		changes = append(changes, "gender type")
	}
	if !sameSet(old.Facilities, updated.Facilities) {
		changes = append(changes, "facilities")
	}
	if !sameSet(old.NearbyCampuses, updated.NearbyCampuses) {
		changes = append(changes, "nearby campuses")
	}
	if !slices.Equal(old.ImageURLs, updated.ImageURLs) {
		changes = append(changes, "images")
	}
	if old.Rating != updated.Rating {
		changes = append(changes, "rating")
	}
	return changes
}

// sameSet compares two tag lists ignoring order
func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa := slices.Clone(a)
	sb := slices.Clone(b)
	slices.Sort(sa)
	slices.Sort(sb)
	return slices.Equal(sa, sb)
}
