package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// KVRepo stores JSON documents in the kv_store table
type KVRepo struct {
	q   querier
	log *zap.Logger
}

func newKVRepo(q querier, log *zap.Logger) *KVRepo {
	return &KVRepo{q: q, log: log}
}

// get returns the raw value under key. Missing and blank values report ok=false.
func (r *KVRepo) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.q.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if strings.TrimSpace(value) == "" {
		return "", false, nil
	}
	return value, true, nil
}

// put upserts the raw value and bumps the key's version
func (r *KVRepo) put(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, version, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			version = kv_store.version + 1,
			updated_at = excluded.updated_at
	`
	if _, err := r.q.ExecContext(ctx, query, key, value, formatTime()); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Versions returns the write counter of each key; unknown keys report 0
func (r *KVRepo) Versions(ctx context.Context, keys ...string) (map[string]int64, error) {
	out := make(map[string]int64, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	args := make([]any, len(keys))
	for i, k := range keys {
		out[k] = 0
		args[i] = k
	}
	query := `SELECT key, version FROM kv_store WHERE key IN (?` + strings.Repeat(", ?", len(keys)-1) + `)`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read versions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var version int64
		if err := rows.Scan(&key, &version); err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		out[key] = version
	}
	return out, rows.Err()
}

// Delete blanks the given keys so the next read falls back to defaults.
// Versions still move forward, so other processes notice.
func (r *KVRepo) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if err := r.put(ctx, key, ""); err != nil {
			return err
		}
	}
	return nil
}

// loadOr decodes the JSON under key, or returns fallback() when the key is
// unset or holds something that does not decode into T.
func loadOr[T any](ctx context.Context, r *KVRepo, key string, fallback func() T) (T, error) {
	raw, ok, err := r.get(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}
	if !ok {
		return fallback(), nil
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		r.log.Warn("ignoring unreadable stored value",
			zap.String("key", key),
			zap.Error(err),
		)
		return fallback(), nil
	}
	return v, nil
}

func store[T any](ctx context.Context, r *KVRepo, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return r.put(ctx, key, string(data))
}
