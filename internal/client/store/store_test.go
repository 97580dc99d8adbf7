package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monacovault/vaultctl/internal/client/models"
	"github.com/monacovault/vaultctl/internal/common"
)

// ---- helpers ----

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(context.Background(), db))
	return NewWithDB(db, testKey())
}

func testUser() *models.User {
	return &models.User{ID: "u1", Email: "a@b.c", UserName: "alice", Role: models.RoleAdmin}
}

// ---- TESTS ----

func TestLoad_EmptyStoreReturnsNoSession(t *testing.T) {
	s := setupStore(t)
	_, _, err := s.Load(context.Background())
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testUser(), "tok-abc"))

	user, token, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", token)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestSave_SecondSaveOverwrites(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testUser(), "tok-1"))
	other := &models.User{ID: "u2", Email: "x@y.z", Role: models.RoleUser}
	require.NoError(t, s.Save(ctx, other, "tok-2"))

	user, token, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
	assert.Equal(t, "u2", user.ID)
}

func TestClear_RemovesSession(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testUser(), "tok"))
	require.NoError(t, s.Clear(ctx))

	_, _, err := s.Load(ctx)
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestSave_TokenNotStoredInPlaintext(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, testUser(), "super-secret-token"))

	var sealed []byte
	err := s.db.QueryRowContext(ctx, `SELECT token_sealed FROM session WHERE id = 1`).Scan(&sealed)
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "super-secret-token")
}

func TestLoad_TamperedTokenDegradesToNoSession(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, testUser(), "tok"))

	_, err := s.db.ExecContext(ctx, `UPDATE session SET token_sealed = X'deadbeef' WHERE id = 1`)
	require.NoError(t, err)

	_, _, err = s.Load(ctx)
	require.ErrorIs(t, err, common.ErrNoSession)

	// The corrupt row was cleared; the store is usable again.
	require.NoError(t, s.Save(ctx, testUser(), "tok-2"))
	_, token, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
}

func TestLoad_CorruptUserJSONDegradesToNoSession(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, testUser(), "tok"))

	_, err := s.db.ExecContext(ctx, `UPDATE session SET user_json = X'00ff' WHERE id = 1`)
	require.NoError(t, err)

	_, _, err = s.Load(ctx)
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestSave_DatabaseErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO session").WillReturnError(errors.New("disk I/O error"))
	s := NewWithDB(db, testKey())

	err = s.Save(context.Background(), testUser(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save session")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_DatabaseErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT user_json").WillReturnError(errors.New("database is locked"))
	s := NewWithDB(db, testKey())

	_, _, err = s.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrNoSession)
	assert.Contains(t, err.Error(), "load session")
}

func TestClear_DatabaseErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM session").WillReturnError(errors.New("database is locked"))
	s := NewWithDB(db, testKey())

	err = s.Clear(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clear session")
}

func TestOpen_CreatesDatabaseAndDeviceSecret(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "session.db")
	secretPath := filepath.Join(dir, "device.secret")
	ctx := context.Background()

	s, err := Open(ctx, dsn, secretPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Save(ctx, testUser(), "tok"))
	_, token, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestOpen_SameSecretFileUnsealsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	dsn := filepath.Join(dir, "session.db")
	secretPath := filepath.Join(dir, "device.secret")
	ctx := context.Background()

	s1, err := Open(ctx, dsn, secretPath)
	require.NoError(t, err)
	require.NoError(t, s1.Save(ctx, testUser(), "persisted"))
	require.NoError(t, s1.Close())

	s2, err := Open(ctx, dsn, secretPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })

	_, token, err := s2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
}
