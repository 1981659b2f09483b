package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/erazemk/zaloga/internal/model"
)

// Setting keys.
const (
	settingJWTSecret      = "jwt_secret"
	settingUsername       = "credential_username"
	settingPasswordHash   = "credential_password_hash"
	settingCredentialTime = "credential_updated_at"
)

// GetSetting returns the value stored under key. ok is false when unset.
func GetSetting(ctx context.Context, db *sql.DB, key string) (value string, ok bool, err error) {
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores value under key, replacing any previous value.
func SetSetting(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storing setting %s: %w", key, err)
	}
	return nil
}

// GetJWTSecret retrieves the session signing secret from the database.
// If no secret exists, it generates one, stores it, and returns it.
// Uses INSERT OR IGNORE + re-SELECT so concurrent first runs agree.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
		settingJWTSecret, hex.EncodeToString(buf),
	)
	if err != nil {
		return "", fmt.Errorf("storing jwt_secret: %w", err)
	}

	secret, ok, err := GetSetting(ctx, db, settingJWTSecret)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("jwt_secret missing after insert")
	}
	return secret, nil
}

// GetCredential returns the stored login credential, or nil if none is set.
func GetCredential(ctx context.Context, db *sql.DB) (*model.Credential, error) {
	query, args, err := sq.Select("key", "value").
		From("settings").
		Where(sq.Eq{"key": []string{settingUsername, settingPasswordHash, settingCredentialTime}}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building credential query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("getting credential: %w", err)
	}
	defer rows.Close()

	values := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scanning credential: %w", err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("getting credential: %w", err)
	}

	if values[settingUsername] == "" || values[settingPasswordHash] == "" {
		return nil, nil
	}
	cred := &model.Credential{
		Username:     values[settingUsername],
		PasswordHash: values[settingPasswordHash],
	}
	if ts, ok := values[settingCredentialTime]; ok {
		cred.UpdatedAt, _ = parseTime(ts)
	}
	return cred, nil
}

// SetCredential replaces the login credential in a single transaction.
func SetCredential(ctx context.Context, db *sql.DB, cred model.Credential) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	pairs := [][2]string{
		{settingUsername, cred.Username},
		{settingPasswordHash, cred.PasswordHash},
		{settingCredentialTime, formatTime(cred.UpdatedAt)},
	}
	for _, p := range pairs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
			p[0], p[1],
		)
		if err != nil {
			return fmt.Errorf("storing %s: %w", p[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing credential: %w", err)
	}
	return nil
}
