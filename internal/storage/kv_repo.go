package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KeyInfo describes one stored document.
type KeyInfo struct {
	Key       string
	Size      int
	UpdatedAt *time.Time
}

type KVRepo struct {
	db *sql.DB
}

func NewKVRepo(db *sql.DB) *KVRepo {
	return &KVRepo{db: db}
}

type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Get returns the raw value stored under key. ok is false when the key is absent.
func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return getValue(ctx, r.db, key)
}

// Put replaces the whole value under key.
func (r *KVRepo) Put(ctx context.Context, key string, value []byte) error {
	return putValue(ctx, r.db, key, value)
}

func (r *KVRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv delete: %w", err)
	}
	return nil
}

// Update reads the value under key, passes it to fn and stores the result,
// all in one transaction. An error from fn leaves the stored value untouched.
func (r *KVRepo) Update(ctx context.Context, key string, fn func(value []byte, ok bool) ([]byte, error)) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		old, ok, err := getValue(ctx, tx, key)
		if err != nil {
			return err
		}
		next, err := fn(old, ok)
		if err != nil {
			return err
		}
		return putValue(ctx, tx, key, next)
	})
}

func (r *KVRepo) List(ctx context.Context) ([]KeyInfo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, length(value), updated_at FROM kv ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("kv list: %w", err)
	}
	defer rows.Close()

	var out []KeyInfo
	for rows.Next() {
		var (
			info    KeyInfo
			updated sql.NullTime
		)
		if err := rows.Scan(&info.Key, &info.Size, &updated); err != nil {
			return nil, fmt.Errorf("kv scan: %w", err)
		}
		if updated.Valid {
			v := updated.Time
			info.UpdatedAt = &v
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv rows: %w", err)
	}
	return out, nil
}

func getValue(ctx context.Context, q rowQueryer, key string) ([]byte, bool, error) {
	row := q.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("kv get: %w", err)
	}
	return []byte(value), true, nil
}

func putValue(ctx context.Context, e execer, key string, value []byte) error {
	_, err := e.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("kv put: %w", err)
	}
	return nil
}
