package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions", "default.json")
	store := NewFileStore(path)

	_, ok, err := store.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(KeyAccessToken, "tok"))
	require.NoError(t, store.Set(KeyUserRole, "patient"))

	v, ok, err := store.Get(KeyAccessToken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok", v)

	// A second store over the same path sees the persisted values.
	reopened := NewFileStore(path)
	v, ok, err = reopened.Get(KeyUserRole)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "patient", v)
}

func TestFileStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.json")
	store := NewFileStore(path)
	require.NoError(t, store.Set(KeyAccessToken, "tok"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_DeleteRemovesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.json")
	store := NewFileStore(path)

	require.NoError(t, store.Set(KeyAccessToken, "tok"))
	require.NoError(t, store.Delete(KeyAccessToken))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "empty scope file should be removed")

	// Deleting a missing key is not an error.
	require.NoError(t, store.Delete(KeyAccessToken))
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	store := NewFileStore(path)
	_, _, err := store.Get(KeyAccessToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt")
}

func TestSealedStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions", "default.json")
	keyPath := filepath.Join(dir, "seal.key")

	store, err := NewSealedStore(path, keyPath)
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyAccessToken, "tok"))

	// The on-disk blob must not contain the plaintext token.
	blob, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(blob), "tok")

	// A fresh store with the same key file can read it back.
	reopened, err := NewSealedStore(path, keyPath)
	require.NoError(t, err)
	v, ok, err := reopened.Get(KeyAccessToken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok", v)
}

func TestSealedStore_WrongKeyFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "default.json")

	store, err := NewSealedStore(path, filepath.Join(dir, "a.key"))
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyAccessToken, "tok"))

	other, err := NewSealedStore(path, filepath.Join(dir, "b.key"))
	require.NoError(t, err)
	_, _, err = other.Get(KeyAccessToken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unseal")
}

func TestSealedStore_KeyFilePermissions(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "seal.key")
	_, err := NewSealedStore(filepath.Join(dir, "default.json"), keyPath)
	require.NoError(t, err)

	info, err := os.Stat(keyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
