package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// LoadCollection returns the serialized collection stored under key.
// ok is false when the key has never been saved.
func LoadCollection(ctx context.Context, db *sql.DB, key string) (data []byte, ok bool, err error) {
	query, args, err := sq.Select("value").
		From("collections").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("building collection query: %w", err)
	}

	var value string
	err = db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading collection %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// SaveCollection overwrites the serialized collection stored under key.
func SaveCollection(ctx context.Context, db *sql.DB, key string, data []byte) error {
	query, args, err := sq.Insert("collections").
		Columns("key", "value", "updated_at").
		Values(key, string(data), formatTime(time.Now())).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("building collection upsert: %w", err)
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("saving collection %q: %w", key, err)
	}
	return nil
}

// Collections adapts a SQLite database to the inventory persistence interface.
type Collections struct {
	db *sql.DB
}

// NewCollections returns a collection store backed by db.
func NewCollections(db *sql.DB) *Collections {
	return &Collections{db: db}
}

// Load implements inventory.Persister.
func (c *Collections) Load(ctx context.Context, key string) ([]byte, bool, error) {
	return LoadCollection(ctx, c.db, key)
}

// Save implements inventory.Persister.
func (c *Collections) Save(ctx context.Context, key string, data []byte) error {
	return SaveCollection(ctx, c.db, key, data)
}
