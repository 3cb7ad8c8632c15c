package repository

import (
	"context"
	"fmt"

	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/seed"
)

// LookupRepo is a KV-backed implementation of LookupRepository
type LookupRepo struct {
	kv *KVRepo
}

// NewLookupRepo creates a new LookupRepo
func NewLookupRepo(kv *KVRepo) *LookupRepo {
	return &LookupRepo{kv: kv}
}

func lookupKey(kind domain.LookupKind) (string, error) {
	switch kind {
	case domain.LookupCampuses:
		return KeyCampuses, nil
	case domain.LookupFacilities:
		return KeyFacilities, nil
	default:
		return "", fmt.Errorf("unknown lookup list %q", kind)
	}
}

// List returns the option list, or the seed list on a fresh store
func (r *LookupRepo) List(ctx context.Context, kind domain.LookupKind) ([]string, error) {
	key, err := lookupKey(kind)
	if err != nil {
		return nil, err
	}

	values, err := loadOr(ctx, r.kv, key, func() []string {
		d := seed.MustLoad()
		if kind == domain.LookupCampuses {
			return d.Campuses
		}
		return d.Facilities
	})
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

// Save replaces the option list
func (r *LookupRepo) Save(ctx context.Context, kind domain.LookupKind, values []string) error {
	key, err := lookupKey(kind)
	if err != nil {
		return err
	}
	if values == nil {
		values = []string{}
	}
	return store(ctx, r.kv, key, values)
}
