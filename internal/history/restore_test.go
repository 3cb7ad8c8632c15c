package history

import (
	"testing"
	"time"

	"github.com/dewakost/dewakost/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoKosts() []domain.Kost {
	a := sampleKost()
	b := sampleKost()
	b.ID = "k-2"
	b.Name = "Kost Anggrek"
	b.PricePerMonth = 1200000
	b.Gender = domain.GenderPutri
	return []domain.Kost{a, b}
}

// mutation performs one tracked change the way the kost service does and
// returns the resulting collection and log entry.
type mutation func(kosts []domain.Kost) ([]domain.Kost, domain.LogEntry)

func TestRestore_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		mutate mutation
	}{
		{
			name: "create",
			mutate: func(kosts []domain.Kost) ([]domain.Kost, domain.LogEntry) {
				k := sampleKost()
				k.ID = "k-new"
				k.Name = "Kost Baru"
				return append([]domain.Kost{k}, cloneAll(kosts)...), RecordCreate(k, nil, fixedNow)
			},
		},
		{
			name: "update",
			mutate: func(kosts []domain.Kost) ([]domain.Kost, domain.LogEntry) {
				old := kosts[0]
				updated := old.Clone()
				updated.PricePerMonth = 900000
				updated.Facilities = append(updated.Facilities, "Parkir")
				e := RecordUpdate(old, updated, nil, fixedNow)
				out := cloneAll(kosts)
				out[0] = updated
				return out, *e
			},
		},
		{
			name: "delete last",
			mutate: func(kosts []domain.Kost) ([]domain.Kost, domain.LogEntry) {
				removed := kosts[len(kosts)-1]
				return without(kosts, removed.ID), RecordDelete(removed, nil, fixedNow)
			},
		},
		{
			name: "archive",
			mutate: func(kosts []domain.Kost) ([]domain.Kost, domain.LogEntry) {
				e := RecordToggleArchive(kosts[1], nil, fixedNow)
				out := cloneAll(kosts)
				out[1].IsArchived = true
				return out, e
			},
		},
		{
			name: "unarchive",
			mutate: func(kosts []domain.Kost) ([]domain.Kost, domain.LogEntry) {
				e := RecordToggleArchive(kosts[1], nil, fixedNow)
				out := cloneAll(kosts)
				out[1].IsArchived = false
				return out, e
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := twoKosts()
			if tt.name == "unarchive" {
				before[1].IsArchived = true
			}

			after, entry := tt.mutate(before)
			log := []domain.LogEntry{entry}

			res, err := Restore(after, log, entry.ID, nil, fixedNow.Add(time.Minute))
			require.NoError(t, err)

			assert.Equal(t, before, res.Kosts)
			require.Len(t, res.Log, 2)
			assert.Equal(t, domain.ActionRestore, res.Log[0].Action)
			assert.Equal(t, res.Entry.ID, res.Log[0].ID)
			assert.True(t, res.Log[1].IsRestored)
			assert.Equal(t, entry.ID, res.Log[1].ID)
		})
	}
}

func TestRestore_DeleteReinsertsAtEnd(t *testing.T) {
	kosts := twoKosts()
	removed := kosts[0]
	after := without(kosts, removed.ID)
	entry := RecordDelete(removed, nil, fixedNow)

	res, err := Restore(after, []domain.LogEntry{entry}, entry.ID, nil, fixedNow)
	require.NoError(t, err)

	require.Len(t, res.Kosts, 2)
	assert.Equal(t, "k-2", res.Kosts[0].ID)
	assert.Equal(t, removed, res.Kosts[1])
}

func TestRestore_DeleteDoesNotDuplicate(t *testing.T) {
	kosts := twoKosts()
	entry := RecordDelete(kosts[0], nil, fixedNow)

	// the record is still live, e.g. restored from a backup
	res, err := Restore(kosts, []domain.LogEntry{entry}, entry.ID, nil, fixedNow)
	require.NoError(t, err)

	assert.Len(t, res.Kosts, 2)

	// the skipped re-insert still consumes the entry and is logged
	require.Len(t, res.Log, 2)
	assert.Equal(t, domain.ActionRestore, res.Log[0].Action)
	assert.True(t, res.Log[1].IsRestored)
	assert.False(t, res.Log[1].CanRestore())
}

func TestRestore_Idempotence(t *testing.T) {
	kosts := twoKosts()
	entry := RecordToggleArchive(kosts[0], nil, fixedNow)
	kosts[0].IsArchived = true

	res, err := Restore(kosts, []domain.LogEntry{entry}, entry.ID, nil, fixedNow)
	require.NoError(t, err)

	_, err = Restore(res.Kosts, res.Log, entry.ID, nil, fixedNow)
	assert.ErrorIs(t, err, ErrNotRestorable)
}

func TestRestore_RestoreEntriesAreFinal(t *testing.T) {
	kosts := twoKosts()
	entry := RecordToggleArchive(kosts[0], nil, fixedNow)

	res, err := Restore(kosts, []domain.LogEntry{entry}, entry.ID, nil, fixedNow)
	require.NoError(t, err)

	_, err = Restore(res.Kosts, res.Log, res.Entry.ID, nil, fixedNow)
	assert.ErrorIs(t, err, ErrNotRestorable)
}

func TestRestore_UnknownEntry(t *testing.T) {
	_, err := Restore(twoKosts(), nil, "missing", nil, fixedNow)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestRestore_MissingSnapshot(t *testing.T) {
	entry := Record(domain.ActionUpdate, "k-1", "Kost Melati", "Updated name.", nil, nil, fixedNow)

	_, err := Restore(twoKosts(), []domain.LogEntry{entry}, entry.ID, nil, fixedNow)
	assert.ErrorIs(t, err, ErrMissingSnapshot)
	assert.ErrorIs(t, err, ErrNotRestorable)
}

func TestRestore_MissingTargetIsNoop(t *testing.T) {
	kosts := twoKosts()
	entry := Record(domain.ActionArchive, "k-gone", "Kost Hilang", "", nil, nil, fixedNow)

	res, err := Restore(kosts, []domain.LogEntry{entry}, entry.ID, nil, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, kosts, res.Kosts)
	assert.Equal(t, "Kost Hilang", res.Entry.KostName)
}

func TestRestore_RecordsActorAndDetails(t *testing.T) {
	kosts := twoKosts()
	entry := RecordToggleArchive(kosts[0], nil, fixedNow)
	actor := &domain.Account{ID: "acc-9", Username: "budi"}

	res, err := Restore(kosts, []domain.LogEntry{entry}, entry.ID, actor, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "budi", res.Entry.Username)
	assert.Equal(t, "k-1", res.Entry.KostID)
	assert.Equal(t, `Reverted 'archive' on "Kost Melati"`, res.Entry.Details)
}

func TestRestore_DoesNotModifyInputs(t *testing.T) {
	kosts := twoKosts()
	old := kosts[0]
	updated := old.Clone()
	updated.Name = "Renamed"
	kosts[0] = updated
	entry := RecordUpdate(old, updated, nil, fixedNow)
	log := []domain.LogEntry{*entry}

	_, err := Restore(kosts, log, entry.ID, nil, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Renamed", kosts[0].Name)
	assert.False(t, log[0].IsRestored)
}

func TestRestore_UpdateKeepsPosition(t *testing.T) {
	kosts := twoKosts()
	old := kosts[1]
	updated := old.Clone()
	updated.Area = "Dinoyo"
	kosts[1] = updated
	entry := RecordUpdate(old, updated, nil, fixedNow)

	res, err := Restore(kosts, []domain.LogEntry{*entry}, entry.ID, nil, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "k-1", res.Kosts[0].ID)
	assert.Equal(t, old, res.Kosts[1])
}
