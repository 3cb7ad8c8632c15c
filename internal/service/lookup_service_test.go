package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/dewakost/dewakost/internal/domain"
)

func newTestLookupService(m *memStore) LookupService {
	return NewLookupService(m.repos(), &mockUnitOfWork{m}, nil)
}

func TestLookupService_Add(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.facilities = []string{"WiFi", "AC"}
	svc := newTestLookupService(m)

	got, err := svc.Add(ctx, admin, domain.LookupFacilities, "  Laundry ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []string{"AC", "Laundry", "WiFi"}) {
		t.Errorf("expected sorted list, got %v", got)
	}

	// duplicates and blanks are ignored
	if _, err := svc.Add(ctx, admin, domain.LookupFacilities, "WiFi"); err != nil {
		t.Errorf("unexpected error for duplicate: %v", err)
	}
	if _, err := svc.Add(ctx, admin, domain.LookupFacilities, "   "); !errors.Is(err, ErrInvalidLookup) {
		t.Errorf("expected ErrInvalidLookup, got %v", err)
	}
	if len(m.facilities) != 3 {
		t.Errorf("unexpected facilities: %v", m.facilities)
	}
}

func TestLookupService_RenameCascades(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.campuses = []string{"UB", "UM"}
	k := melati()
	k.NearbyCampuses = []string{"UB", "UM"}
	m.kosts = []domain.Kost{k}
	svc := newTestLookupService(m)

	got, err := svc.Rename(ctx, admin, domain.LookupCampuses, "UB", "Universitas Brawijaya")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []string{"UM", "Universitas Brawijaya"}) {
		t.Errorf("unexpected list: %v", got)
	}
	if !slices.Equal(m.kosts[0].NearbyCampuses, []string{"Universitas Brawijaya", "UM"}) {
		t.Errorf("expected rename in listing, got %v", m.kosts[0].NearbyCampuses)
	}
	if len(m.log) != 0 {
		t.Error("lookup changes are not part of the history log")
	}
}

func TestLookupService_RenameUnknown(t *testing.T) {
	m := newMemStore()
	m.campuses = []string{"UB"}
	svc := newTestLookupService(m)

	_, err := svc.Rename(context.Background(), admin, domain.LookupCampuses, "UMM", "Universitas Muhammadiyah Malang")
	if !errors.Is(err, ErrInvalidLookup) {
		t.Errorf("expected ErrInvalidLookup, got %v", err)
	}
}

func TestLookupService_RemoveCascades(t *testing.T) {
	ctx := context.Background()
	m := newMemStore()
	m.facilities = []string{"AC", "WiFi"}
	k := melati()
	k.Facilities = []string{"WiFi", "AC"}
	m.kosts = []domain.Kost{k}
	svc := newTestLookupService(m)

	got, err := svc.Remove(ctx, admin, domain.LookupFacilities, "AC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []string{"WiFi"}) || !slices.Equal(m.kosts[0].Facilities, []string{"WiFi"}) {
		t.Errorf("expected AC removed everywhere, got %v / %v", got, m.kosts[0].Facilities)
	}
}

func TestLookupService_RequiresActorAndKind(t *testing.T) {
	svc := newTestLookupService(newMemStore())
	ctx := context.Background()

	if _, err := svc.Add(ctx, nil, domain.LookupCampuses, "UB"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Add(ctx, admin, "colors", "red"); !errors.Is(err, ErrInvalidLookup) {
		t.Errorf("expected ErrInvalidLookup, got %v", err)
	}
}
