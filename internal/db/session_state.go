package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/examranking/rankcalc/internal/logger"
)

// GetSessionValue reads one durable session entry. A missing key returns
// ("", false, nil).
func (db *DB) GetSessionValue(ctx context.Context, key string) (string, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("reading session value: key=%s", key)

	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM session_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		log.Error("failed to read session value: %v", err)
		return "", false, err
	}
	return value, true, nil
}

// PutSessionValues writes the given entries in one transaction, so the user
// record and token are persisted together.
func (db *DB) PutSessionValues(ctx context.Context, values map[string]string) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("writing %d session values", len(values))

	return tx(ctx, db, func(t *sql.Tx) error {
		for key, value := range values {
			if _, err := t.ExecContext(ctx, `
INSERT INTO session_state (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`, key, value); err != nil {
				log.Error("failed to write session value %s: %v", key, err)
				return err
			}
		}
		return nil
	})
}

// DeleteSessionValues removes the given entries in one transaction. Missing
// keys are not an error.
func (db *DB) DeleteSessionValues(ctx context.Context, keys ...string) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("deleting %d session values", len(keys))

	return tx(ctx, db, func(t *sql.Tx) error {
		for _, key := range keys {
			if _, err := t.ExecContext(ctx, `DELETE FROM session_state WHERE key = ?`, key); err != nil {
				log.Error("failed to delete session value %s: %v", key, err)
				return err
			}
		}
		return nil
	})
}
