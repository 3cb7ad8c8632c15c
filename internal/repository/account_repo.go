package repository

import (
	"context"

	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/seed"
)

// AccountRepo is a KV-backed implementation of AccountRepository
type AccountRepo struct {
	kv *KVRepo
}

// NewAccountRepo creates a new AccountRepo
func NewAccountRepo(kv *KVRepo) *AccountRepo {
	return &AccountRepo{kv: kv}
}

// List returns the stored accounts. Until accounts are first saved, the
// built-in admin is the only one.
func (r *AccountRepo) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := loadOr(ctx, r.kv, KeyAccounts, func() []domain.Account {
		return []domain.Account{domain.DefaultAccount()}
	})
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		// An empty list would lock everyone out
		accounts = []domain.Account{domain.DefaultAccount()}
	}
	return accounts, nil
}

// Save replaces the account list
func (r *AccountRepo) Save(ctx context.Context, accounts []domain.Account) error {
	return store(ctx, r.kv, KeyAccounts, accounts)
}

// SettingsRepo is a KV-backed implementation of SettingsRepository
type SettingsRepo struct {
	kv *KVRepo
}

// NewSettingsRepo creates a new SettingsRepo
func NewSettingsRepo(kv *KVRepo) *SettingsRepo {
	return &SettingsRepo{kv: kv}
}

// SocialLinks returns the footer links, or the seed links on a fresh store
func (r *SettingsRepo) SocialLinks(ctx context.Context) (domain.SocialLinks, error) {
	return loadOr(ctx, r.kv, KeySocial, func() domain.SocialLinks {
		return seed.MustLoad().SocialLinks
	})
}

// SaveSocialLinks replaces the footer links
func (r *SettingsRepo) SaveSocialLinks(ctx context.Context, links domain.SocialLinks) error {
	return store(ctx, r.kv, KeySocial, links)
}

type session struct {
	AccountID string `json:"accountId"`
}

// Session returns the logged-in account id, or "" when logged out
func (r *SettingsRepo) Session(ctx context.Context) (string, error) {
	s, err := loadOr(ctx, r.kv, KeySession, func() session { return session{} })
	if err != nil {
		return "", err
	}
	return s.AccountID, nil
}

// SaveSession records accountID as logged in
func (r *SettingsRepo) SaveSession(ctx context.Context, accountID string) error {
	return store(ctx, r.kv, KeySession, session{AccountID: accountID})
}

// ClearSession logs out
func (r *SettingsRepo) ClearSession(ctx context.Context) error {
	return r.kv.Delete(ctx, KeySession)
}
