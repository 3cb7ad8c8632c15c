package repository

import (
	"context"

	"github.com/dewakost/dewakost/internal/domain"
)

// Storage keys, shared with backups exported by the web version
const (
	KeyKosts      = "kostData"
	KeyHistory    = "historyLog"
	KeyCampuses   = "filterCampuses"
	KeyFacilities = "filterFacilities"
	KeySocial     = "socialLinks"
	KeyAccounts   = "accounts"
	KeySession    = "session"
)

// AllKeys lists every persisted key
var AllKeys = []string{KeyKosts, KeyHistory, KeyCampuses, KeyFacilities, KeySocial, KeyAccounts, KeySession}

// KostRepository manages the listing collection. Order is significant.
type KostRepository interface {
	List(ctx context.Context) ([]domain.Kost, error)
	Save(ctx context.Context, kosts []domain.Kost) error
}

// HistoryRepository manages the activity log, newest first
type HistoryRepository interface {
	List(ctx context.Context) ([]domain.LogEntry, error)
	Save(ctx context.Context, log []domain.LogEntry) error
}

// LookupRepository manages the campus and facility option lists
type LookupRepository interface {
	List(ctx context.Context, kind domain.LookupKind) ([]string, error)
	Save(ctx context.Context, kind domain.LookupKind, values []string) error
}

// AccountRepository manages admin logins
type AccountRepository interface {
	List(ctx context.Context) ([]domain.Account, error)
	Save(ctx context.Context, accounts []domain.Account) error
}

// SettingsRepository manages site settings and the local session
type SettingsRepository interface {
	SocialLinks(ctx context.Context) (domain.SocialLinks, error)
	SaveSocialLinks(ctx context.Context, links domain.SocialLinks) error
	Session(ctx context.Context) (string, error) // Returns "" when logged out
	SaveSession(ctx context.Context, accountID string) error
	ClearSession(ctx context.Context) error
}

// StoreRepository exposes the raw store for change detection and reset
type StoreRepository interface {
	Versions(ctx context.Context, keys ...string) (map[string]int64, error)
	Delete(ctx context.Context, keys ...string) error
}

// Repositories groups the typed stores that share one connection or transaction
type Repositories struct {
	Kosts    KostRepository
	History  HistoryRepository
	Lookups  LookupRepository
	Accounts AccountRepository
	Settings SettingsRepository
	Store    StoreRepository
}

// UnitOfWork runs fn with repositories bound to a single transaction. fn's
// writes are committed together or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(Repositories) error) error
}
