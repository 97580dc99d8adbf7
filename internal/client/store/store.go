// Package store persists the client session durably, the Go analog of the
// dashboard's two localStorage keys. The user record and the bearer token
// are written and cleared together in one transaction so neither can
// survive without the other. The token is sealed at rest with AES-GCM under
// a key stretched from a per-install device secret.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/monacovault/vaultctl/internal/client/models"
	"github.com/monacovault/vaultctl/internal/client/store/migrations"
	"github.com/monacovault/vaultctl/internal/common"
	"github.com/monacovault/vaultctl/internal/cryptox"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a SQLite-backed session store.
type Store struct {
	db  *sql.DB
	key []byte
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (or creates) the session database at dsn, applies migrations,
// and derives the sealing key from the device secret at secretPath.
func Open(ctx context.Context, dsn string, secretPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}

	secret, salt, err := cryptox.LoadOrCreateDeviceSecret(secretPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("device secret: %w", err)
	}
	key := cryptox.DeriveKey(secret, salt)
	common.WipeByteArray(secret)

	return &Store{db: db, key: key}, nil
}

// NewWithDB wires a Store over an existing database handle and sealing key.
// Intended for tests.
func NewWithDB(db *sql.DB, key []byte) *Store {
	return &Store{db: db, key: key}
}

// Save upserts the session row. User and token land in the same statement,
// so a partial write cannot leave a stale token next to a cleared user.
func (s *Store) Save(ctx context.Context, user *models.User, token string) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	sealed, nonce, err := cryptox.Seal([]byte(token), s.key)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}

	query := `INSERT INTO session (id, user_json, token_sealed, token_nonce, updated_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			user_json = excluded.user_json,
			token_sealed = excluded.token_sealed,
			token_nonce = excluded.token_nonce,
			updated_at = excluded.updated_at`
	if _, err := s.db.ExecContext(ctx, query, userJSON, sealed, nonce); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the persisted user and token, or common.ErrNoSession when
// nothing is stored. A row that cannot be decoded or unsealed is treated as
// absent after being cleared, so a corrupt store never wedges startup.
func (s *Store) Load(ctx context.Context) (*models.User, string, error) {
	var userJSON, sealed, nonce []byte
	query := `SELECT user_json, token_sealed, token_nonce FROM session WHERE id = 1`
	err := s.db.QueryRowContext(ctx, query).Scan(&userJSON, &sealed, &nonce)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", common.ErrNoSession
	}
	if err != nil {
		return nil, "", fmt.Errorf("load session: %w", err)
	}

	token, err := cryptox.Open(sealed, nonce, s.key)
	if err != nil {
		_ = s.Clear(ctx)
		return nil, "", common.ErrNoSession
	}

	user := &models.User{}
	if err := json.Unmarshal(userJSON, user); err != nil {
		_ = s.Clear(ctx)
		return nil, "", common.ErrNoSession
	}
	return user, string(token), nil
}

// Clear removes the persisted session.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
