package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const cacheFileName = "cache.sqlite"

// Cache is the persistent local key-value store. It is the always-on mirror
// and the only store when no session exists: agenda days, pending notes and
// local todos all live here as JSON blobs under well-known keys.
type Cache struct {
	Dir string
}

// Keys used by the repositories layered on top of the cache.
const (
	KeyAgendas   = "agendas"   // map date-key -> []AgendaItem, all days in one blob
	KeyNotes     = "notes"     // []Note created locally, pending sync
	KeyTodos     = "todos"     // []Todo, all days
	KeySemesters = "semesters" // []gpa.Semester for the grade calculator
)

// DefaultDir returns the cache directory under the user config dir.
func DefaultDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache"), nil
}

func (c Cache) Ensure() error {
	return os.MkdirAll(c.Dir, 0o755)
}

func (c Cache) path() string {
	return filepath.Join(c.Dir, cacheFileName)
}

func (c Cache) open(ctx context.Context) (*sql.DB, error) {
	if err := c.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", c.path())
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL,
		updated_at_unixms INTEGER NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	return db, nil
}

// Get returns the value stored under key, with ok=false when absent.
func (c Cache) Get(ctx context.Context, key string) (string, bool, error) {
	db, err := c.open(ctx)
	if err != nil {
		return "", false, err
	}
	defer db.Close()

	var v string
	err = db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set stores value under key, replacing any previous value.
func (c Cache) Set(ctx context.Context, key, value string) error {
	db, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT OR REPLACE INTO kv(k, v, updated_at_unixms) VALUES(?, ?, ?)`,
		key, value, time.Now().UTC().UnixMilli())
	return err
}

// Delete removes a single key. Deleting an absent key is not an error.
func (c Cache) Delete(ctx context.Context, key string) error {
	db, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `DELETE FROM kv WHERE k = ?`, key)
	return err
}

// Clear removes every key.
func (c Cache) Clear(ctx context.Context) error {
	db, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `DELETE FROM kv`)
	return err
}

// Keys enumerates the stored keys in lexicographic order.
func (c Cache) Keys(ctx context.Context) ([]string, error) {
	db, err := c.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT k FROM kv ORDER BY k`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// EstimateSize returns the approximate payload size in bytes (keys plus
// values, excluding storage overhead).
func (c Cache) EstimateSize(ctx context.Context) (int64, error) {
	db, err := c.open(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var n sql.NullInt64
	if err := db.QueryRowContext(ctx, `SELECT SUM(LENGTH(k) + LENGTH(v)) FROM kv`).Scan(&n); err != nil {
		return 0, err
	}
	return n.Int64, nil
}
