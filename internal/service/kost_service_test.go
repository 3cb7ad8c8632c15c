package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/history"
	"github.com/dewakost/dewakost/internal/repository"
	"go.uber.org/zap"
)

func newTestKostService(m *memStore) *kostService {
	clock := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return &kostService{
		repos: m.repos(),
		uow:   &mockUnitOfWork{m},
		log:   zap.NewNop(),
		now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}
}

func melati() domain.Kost {
	return domain.Kost{
		ID:             "k-1",
		Name:           "Kost Melati",
		Area:           "Lowokwaru",
		Address:        "Jl. Kertosariro 12",
		PricePerMonth:  700000,
		Rating:         4.5,
		Facilities:     []string{"WiFi"},
		NearbyCampuses: []string{"Universitas Brawijaya"},
		Gender:         domain.GenderPutra,
	}
}

func TestKostService_MutationsRequireActor(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.kosts = []domain.Kost{melati()}
	svc := NewKostService(m.repos(), &mockUnitOfWork{m}, nil)

	if _, err := svc.Create(ctx, nil, melati()); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("create: expected ErrUnauthenticated, got %v", err)
	}
	if err := svc.Delete(ctx, nil, "k-1"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("delete: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.ToggleArchive(ctx, nil, "k-1"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("archive: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Restore(ctx, nil, "x"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("restore: expected ErrUnauthenticated, got %v", err)
	}
	if len(m.kosts) != 1 || len(m.log) != 0 {
		t.Error("expected no state change")
	}
}

func TestKostService_Create(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.kosts = []domain.Kost{melati()}
	svc := newTestKostService(m)

	input := melati()
	input.ID = "ignored"
	input.Name = "  Griya Anggrek "
	input.IsArchived = true

	created, err := svc.Create(ctx, admin, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.ID == "ignored" || created.ID == "" {
		t.Errorf("expected a fresh id, got %q", created.ID)
	}
	if created.IsArchived {
		t.Error("new listings start visible")
	}
	if len(m.kosts) != 2 || m.kosts[0].ID != created.ID {
		t.Fatalf("expected new kost at the top, got %+v", m.kosts)
	}
	if len(m.log) != 1 || m.log[0].Action != domain.ActionCreate || m.log[0].KostName != "Griya Anggrek" {
		t.Fatalf("unexpected log: %+v", m.log)
	}
	if m.log[0].Username != "admin" {
		t.Errorf("expected attributed entry, got %q", m.log[0].Username)
	}
}

func TestKostService_CreateInvalid(t *testing.T) {
	m := newMemStore()
	svc := newTestKostService(m)

	input := melati()
	input.Name = ""
	if _, err := svc.Create(context.Background(), admin, input); err == nil {
		t.Fatal("expected validation error")
	}
	if len(m.log) != 0 {
		t.Error("expected nothing recorded")
	}
}

func TestKostService_Update(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	archived := melati()
	archived.IsArchived = true
	m.kosts = []domain.Kost{archived}
	svc := newTestKostService(m)

	input := melati()
	input.PricePerMonth = 800000
	input.IsArchived = false

	updated, changed, err := svc.Update(ctx, admin, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatal("expected a change")
	}
	if !updated.IsArchived || !m.kosts[0].IsArchived {
		t.Error("update must not touch the archive flag")
	}
	if m.kosts[0].PricePerMonth != 800000 {
		t.Errorf("expected price saved, got %d", m.kosts[0].PricePerMonth)
	}
	if len(m.log) != 1 || m.log[0].Details != "Updated price from Rp 700.000 to Rp 800.000." {
		t.Fatalf("unexpected log: %+v", m.log)
	}
}

func TestKostService_UpdateWithoutChanges(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.kosts = []domain.Kost{melati()}
	svc := newTestKostService(m)

	_, changed, err := svc.Update(ctx, admin, melati())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("expected no change")
	}
	if len(m.log) != 0 || m.versions[repository.KeyKosts] != 0 {
		t.Error("expected nothing written")
	}
}

func TestKostService_UpdateUntrackedField(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.kosts = []domain.Kost{melati()}
	svc := newTestKostService(m)

	input := melati()
	input.ContactLink = "https://wa.me/628123456789"

	updated, changed, err := svc.Update(ctx, admin, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("expected the contact link edit to count as a change")
	}
	if updated.ContactLink != input.ContactLink {
		t.Errorf("expected returned contact link %q, got %q", input.ContactLink, updated.ContactLink)
	}
	if m.kosts[0].ContactLink != input.ContactLink {
		t.Errorf("expected stored contact link %q, got %q", input.ContactLink, m.kosts[0].ContactLink)
	}
	if m.versions[repository.KeyKosts] == 0 {
		t.Error("expected the collection to be written")
	}
	if len(m.log) != 0 || m.versions[repository.KeyHistory] != 0 {
		t.Errorf("contact link edits leave no history entry, got %+v", m.log)
	}
}

func TestKostService_UpdateMissing(t *testing.T) {
	m := newMemStore()
	svc := newTestKostService(m)

	_, _, err := svc.Update(context.Background(), admin, melati())
	if !errors.Is(err, ErrKostNotFound) {
		t.Errorf("expected ErrKostNotFound, got %v", err)
	}
}

func TestKostService_DeleteAndRestore(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	other := melati()
	other.ID = "k-2"
	m.kosts = []domain.Kost{melati(), other}
	svc := newTestKostService(m)

	if err := svc.Delete(ctx, admin, "k-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(m.kosts) != 1 || m.kosts[0].ID != "k-2" {
		t.Fatalf("unexpected kosts after delete: %+v", m.kosts)
	}

	entry, err := svc.Restore(ctx, admin, m.log[0].ID)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if entry.Action != domain.ActionRestore {
		t.Errorf("expected restore entry, got %s", entry.Action)
	}
	if len(m.kosts) != 2 || m.kosts[1].ID != "k-1" {
		t.Fatalf("expected k-1 re-inserted at the end, got %+v", m.kosts)
	}
	if len(m.log) != 2 || !m.log[1].IsRestored || m.log[0].ID != entry.ID {
		t.Fatalf("unexpected log: %+v", m.log)
	}

	// second attempt is rejected and changes nothing
	before := m.versions[repository.KeyKosts]
	if _, err := svc.Restore(ctx, admin, m.log[1].ID); !errors.Is(err, history.ErrNotRestorable) {
		t.Errorf("expected ErrNotRestorable, got %v", err)
	}
	if m.versions[repository.KeyKosts] != before || len(m.log) != 2 {
		t.Error("rejected restore must not write")
	}
}

func TestKostService_ToggleArchiveAndRestore(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.kosts = []domain.Kost{melati()}
	svc := newTestKostService(m)

	k, err := svc.ToggleArchive(ctx, admin, "k-1")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !k.IsArchived || m.log[0].Action != domain.ActionArchive {
		t.Fatalf("expected archive, got %+v / %s", k, m.log[0].Action)
	}

	if _, err := svc.Restore(ctx, admin, m.log[0].ID); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if m.kosts[0].IsArchived {
		t.Error("restoring an archive must make the listing visible")
	}
}

func TestKostService_WritesAreAtomic(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.kosts = []domain.Kost{melati()}
	m.failKey = repository.KeyHistory
	svc := newTestKostService(m)

	if err := svc.Delete(ctx, admin, "k-1"); !errors.Is(err, errDisk) {
		t.Fatalf("expected disk error, got %v", err)
	}
	if len(m.kosts) != 1 {
		t.Error("collection change must roll back with the log")
	}
}

func TestKostService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	for i := 0; i < 13; i++ {
		k := melati()
		k.ID = fmt.Sprintf("k-%d", i)
		k.IsArchived = i == 0
		m.kosts = append(m.kosts, k)
	}
	svc := newTestKostService(m)

	page, err := svc.List(ctx, domain.NewFilterState(0), false, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalItems != 12 || !page.Reset || page.Number != 1 {
		t.Errorf("expected archived listing hidden and page reset, got %+v", page)
	}

	page, err = svc.List(ctx, domain.NewFilterState(0), true, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "k-12" {
		t.Errorf("expected last listing on page 2, got %+v", page.Items)
	}

	if _, err := svc.Get(ctx, "k-0", false); !errors.Is(err, ErrKostNotFound) {
		t.Errorf("expected archived listing hidden, got %v", err)
	}
	if _, err := svc.Get(ctx, "k-0", true); err != nil {
		t.Errorf("expected admin to see archived listing: %v", err)
	}
}

func TestKostService_History(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.kosts = []domain.Kost{melati()}
	svc := newTestKostService(m)

	if _, err := svc.ToggleArchive(ctx, admin, "k-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ToggleArchive(ctx, admin, "k-1"); err != nil {
		t.Fatal(err)
	}

	entries, err := svc.History(ctx, history.Filter{Term: "melati"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 || entries[0].Action != domain.ActionUnarchive {
		t.Errorf("expected newest first, got %+v", entries)
	}
}
