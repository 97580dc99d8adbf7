package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_DeterministicAnd32Bytes(t *testing.T) {
	secret := []byte("device-secret")
	salt := []byte("per-install-salt")

	k1 := DeriveKey(secret, salt)
	k2 := DeriveKey(secret, salt)
	assert.Len(t, k1, 32)
	assert.Equal(t, k1, k2)

	other := DeriveKey(secret, []byte("different-salt00"))
	assert.NotEqual(t, k1, other)
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("s"), []byte("salt"))
	plaintext := []byte("bearer-token-value")

	ciphertext, nonce, err := Seal(plaintext, key)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	got, err := Open(ciphertext, nonce, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	key := DeriveKey([]byte("s"), []byte("salt"))
	ciphertext, nonce, err := Seal([]byte("data"), key)
	require.NoError(t, err)

	wrong := DeriveKey([]byte("other"), []byte("salt"))
	_, err = Open(ciphertext, nonce, wrong)
	assert.Error(t, err)
}

func TestSeal_InvalidKeyLength(t *testing.T) {
	_, _, err := Seal([]byte("data"), []byte("short"))
	assert.Error(t, err)
}

func TestLoadOrCreateDeviceSecret_CreatesWith0600(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.secret")

	secret, salt, err := LoadOrCreateDeviceSecret(path)
	require.NoError(t, err)
	assert.Len(t, secret, 32)
	assert.Len(t, salt, 16)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadOrCreateDeviceSecret_StableAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.secret")

	secret1, salt1, err := LoadOrCreateDeviceSecret(path)
	require.NoError(t, err)
	secret2, salt2, err := LoadOrCreateDeviceSecret(path)
	require.NoError(t, err)

	assert.Equal(t, secret1, secret2)
	assert.Equal(t, salt1, salt2)
}

func TestLoadOrCreateDeviceSecret_CorruptFileRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.secret")
	require.NoError(t, os.WriteFile(path, []byte("too short"), 0o600))

	_, _, err := LoadOrCreateDeviceSecret(path)
	assert.Error(t, err)
}
