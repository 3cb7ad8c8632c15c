package repository

import (
	"context"
	"fmt"

	"github.com/dewakost/dewakost/internal/db"
	"go.uber.org/zap"
)

// SQLStore hands out repositories bound to the database or to a transaction
type SQLStore struct {
	db  *db.DB
	log *zap.Logger
}

// NewSQLStore creates a new SQLStore
func NewSQLStore(database *db.DB, log *zap.Logger) *SQLStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLStore{db: database, log: log}
}

// Repositories returns repositories that autocommit each write
func (s *SQLStore) Repositories() Repositories {
	return newRepositories(newKVRepo(s.db, s.log))
}

// WithinTx runs fn inside a transaction and commits if fn returns nil
func (s *SQLStore) WithinTx(ctx context.Context, fn func(Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(newRepositories(newKVRepo(tx, s.log))); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func newRepositories(kv *KVRepo) Repositories {
	return Repositories{
		Kosts:    NewKostRepo(kv),
		History:  NewHistoryRepo(kv),
		Lookups:  NewLookupRepo(kv),
		Accounts: NewAccountRepo(kv),
		Settings: NewSettingsRepo(kv),
		Store:    kv,
	}
}
