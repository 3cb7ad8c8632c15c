package service

import (
	"context"
	"errors"
	"slices"

	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/repository"
)

// memStore backs every mock repository with plain fields
type memStore struct {
	kosts      []domain.Kost
	log        []domain.LogEntry
	campuses   []string
	facilities []string
	social     domain.SocialLinks
	accounts   []domain.Account
	session    string
	versions   map[string]int64
	failKey    string // Save of this key returns errDisk
}

func newMemStore() *memStore {
	return &memStore{
		accounts: []domain.Account{domain.DefaultAccount()},
		versions: map[string]int64{},
	}
}

func (m *memStore) bump(key string) error {
	if key == m.failKey {
		return errDisk
	}
	m.versions[key]++
	return nil
}

type mockKostRepo struct{ m *memStore }

func (r *mockKostRepo) List(ctx context.Context) ([]domain.Kost, error) {
	out := make([]domain.Kost, len(r.m.kosts))
	for i, k := range r.m.kosts {
		out[i] = k.Clone()
	}
	return out, nil
}
func (r *mockKostRepo) Save(ctx context.Context, kosts []domain.Kost) error {
	if err := r.m.bump(repository.KeyKosts); err != nil {
		return err
	}
	r.m.kosts = slices.Clone(kosts)
	return nil
}

type mockHistoryRepo struct{ m *memStore }

func (r *mockHistoryRepo) List(ctx context.Context) ([]domain.LogEntry, error) {
	return slices.Clone(r.m.log), nil
}
func (r *mockHistoryRepo) Save(ctx context.Context, log []domain.LogEntry) error {
	if err := r.m.bump(repository.KeyHistory); err != nil {
		return err
	}
	r.m.log = slices.Clone(log)
	return nil
}

type mockLookupRepo struct{ m *memStore }

func (r *mockLookupRepo) List(ctx context.Context, kind domain.LookupKind) ([]string, error) {
	if kind == domain.LookupCampuses {
		return slices.Clone(r.m.campuses), nil
	}
	return slices.Clone(r.m.facilities), nil
}
func (r *mockLookupRepo) Save(ctx context.Context, kind domain.LookupKind, values []string) error {
	if err := r.m.bump(string(kind)); err != nil {
		return err
	}
	if kind == domain.LookupCampuses {
		r.m.campuses = slices.Clone(values)
	} else {
		r.m.facilities = slices.Clone(values)
	}
	return nil
}

type mockAccountRepo struct{ m *memStore }

func (r *mockAccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	return slices.Clone(r.m.accounts), nil
}
func (r *mockAccountRepo) Save(ctx context.Context, accounts []domain.Account) error {
	if err := r.m.bump(repository.KeyAccounts); err != nil {
		return err
	}
	r.m.accounts = slices.Clone(accounts)
	return nil
}

type mockSettingsRepo struct{ m *memStore }

func (r *mockSettingsRepo) SocialLinks(ctx context.Context) (domain.SocialLinks, error) {
	return r.m.social, nil
}
func (r *mockSettingsRepo) SaveSocialLinks(ctx context.Context, links domain.SocialLinks) error {
	r.m.social = links
	return r.m.bump(repository.KeySocial)
}
func (r *mockSettingsRepo) Session(ctx context.Context) (string, error) { return r.m.session, nil }
func (r *mockSettingsRepo) SaveSession(ctx context.Context, accountID string) error {
	r.m.session = accountID
	return nil
}
func (r *mockSettingsRepo) ClearSession(ctx context.Context) error {
	r.m.session = ""
	return nil
}

type mockStoreRepo struct {
	m       *memStore
	deleted []string
}

func (r *mockStoreRepo) Versions(ctx context.Context, keys ...string) (map[string]int64, error) {
	out := map[string]int64{}
	for _, k := range keys {
		out[k] = r.m.versions[k]
	}
	return out, nil
}
func (r *mockStoreRepo) Delete(ctx context.Context, keys ...string) error {
	r.deleted = append(r.deleted, keys...)
	return nil
}

func (m *memStore) repos() repository.Repositories {
	return repository.Repositories{
		Kosts:    &mockKostRepo{m},
		History:  &mockHistoryRepo{m},
		Lookups:  &mockLookupRepo{m},
		Accounts: &mockAccountRepo{m},
		Settings: &mockSettingsRepo{m},
		Store:    &mockStoreRepo{m: m},
	}
}

// mockUnitOfWork snapshots the store and restores it when fn fails
type mockUnitOfWork struct{ m *memStore }

func (u *mockUnitOfWork) WithinTx(ctx context.Context, fn func(repository.Repositories) error) error {
	snapshot := *u.m
	snapshot.versions = nil
	if err := fn(u.m.repos()); err != nil {
		versions := u.m.versions
		*u.m = snapshot
		u.m.versions = versions
		return err
	}
	return nil
}

var errDisk = errors.New("disk full")

var admin = &domain.Account{ID: "admin-main", Username: "admin", Password: "admin123"}
