package repository

import (
	"context"

	"github.com/dewakost/dewakost/internal/domain"
	"github.com/dewakost/dewakost/internal/seed"
)

// KostRepo is a KV-backed implementation of KostRepository
type KostRepo struct {
	kv *KVRepo
}

// NewKostRepo creates a new KostRepo
func NewKostRepo(kv *KVRepo) *KostRepo {
	return &KostRepo{kv: kv}
}

// List returns the stored collection, or the seed listings on a fresh store
func (r *KostRepo) List(ctx context.Context) ([]domain.Kost, error) {
	kosts, err := loadOr(ctx, r.kv, KeyKosts, func() []domain.Kost {
		return seed.MustLoad().Kosts
	})
	if err != nil {
		return nil, err
	}
	if kosts == nil {
		kosts = []domain.Kost{}
	}
	return kosts, nil
}

// Save replaces the collection
func (r *KostRepo) Save(ctx context.Context, kosts []domain.Kost) error {
	if kosts == nil {
		kosts = []domain.Kost{}
	}
	return store(ctx, r.kv, KeyKosts, kosts)
}

// HistoryRepo is a KV-backed implementation of HistoryRepository
type HistoryRepo struct {
	kv *KVRepo
}

// NewHistoryRepo creates a new HistoryRepo
func NewHistoryRepo(kv *KVRepo) *HistoryRepo {
	return &HistoryRepo{kv: kv}
}

// List returns the log, newest first
func (r *HistoryRepo) List(ctx context.Context) ([]domain.LogEntry, error) {
	log, err := loadOr(ctx, r.kv, KeyHistory, func() []domain.LogEntry { return nil })
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = []domain.LogEntry{}
	}
	return log, nil
}

// Save replaces the log
func (r *HistoryRepo) Save(ctx context.Context, log []domain.LogEntry) error {
	if log == nil {
		log = []domain.LogEntry{}
	}
	return store(ctx, r.kv, KeyHistory, log)
}
