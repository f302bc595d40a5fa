package credstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/givehub/givehub/internal/client/models"
	"github.com/givehub/givehub/internal/dbx"
)

const (
	keyToken = "token"
	keyRole  = "role"
	keyUser  = "user"
)

// SQLiteStore keeps the session in a single-row-per-key credentials table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func get(ctx context.Context, q dbx.DBTX, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, q dbx.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}

// Save persists the full session in one transaction: token, role cache,
// and the JSON-serialized user record.
func (s *SQLiteStore) Save(ctx context.Context, token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyToken, token); err != nil {
			return err
		}
		if err := set(ctx, tx, keyRole, user.Role); err != nil {
			return err
		}
		return set(ctx, tx, keyUser, string(data))
	})
}

// SaveUser replaces the stored user record and role cache, leaving the
// token untouched. Used after a successful profile refresh or local edit.
func (s *SQLiteStore) SaveUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyRole, user.Role); err != nil {
			return err
		}
		return set(ctx, tx, keyUser, string(data))
	})
}

// Load reads the stored session. ok is false when no token is present.
// A user record that is missing or fails to parse yields a nil User with
// ok still true; corruption is never surfaced as an error.
func (s *SQLiteStore) Load(ctx context.Context) (models.Session, bool) {
	token, err := get(ctx, s.db, keyToken)
	if err != nil || token == "" {
		return models.Session{}, false
	}

	sess := models.Session{Token: token}

	raw, err := get(ctx, s.db, keyUser)
	if err != nil || raw == "" {
		return sess, true
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return sess, true
	}
	sess.User = &user
	return sess, true
}

// Clear removes every key the store owns.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
