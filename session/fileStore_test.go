package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oren0115/ecommerce-sub000/models"
)

func testUser() *models.User {
	return &models.User{ID: 7, Username: "jane", Email: "jane@example.com", Role: "user"}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	assert.False(t, Authenticated(store))

	require.NoError(t, store.Set("token-abc", testUser()))
	assert.Equal(t, "token-abc", store.Token())
	user, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, "jane", user.Username)
	assert.True(t, Authenticated(store))

	// A fresh store on the same file sees the same session.
	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, "token-abc", reloaded.Token())
	user, ok = reloaded.User()
	require.True(t, ok)
	assert.Equal(t, 7, user.ID)
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Set("token-abc", testUser()))
	require.NoError(t, store.Clear())
	assert.Empty(t, store.Token())
	_, ok := store.User()
	assert.False(t, ok)

	// Clearing an already-empty store is a no-op, not an error.
	require.NoError(t, store.Clear())

	reloaded, err := NewFileStore(path)
	require.NoError(t, err)
	assert.False(t, Authenticated(reloaded))
}

func TestFileStoreRejectsHalfSession(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	assert.Error(t, store.Set("", testUser()))
	assert.Error(t, store.Set("token-abc", nil))
	assert.False(t, Authenticated(store))
}

func TestFileStoreIgnoresCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	assert.False(t, Authenticated(store))

	// The corrupt file must be gone, not merely ignored.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreTreatsPartialSlotsAsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"orphan"}`), 0o600))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Empty(t, store.Token())
	assert.False(t, Authenticated(store))

	// The orphan token must not survive on disk for the next load.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestMemStoreCopiesUser(t *testing.T) {
	store := NewMemStore()
	user := testUser()
	require.NoError(t, store.Set("token-abc", user))

	user.Username = "mutated"
	stored, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, "jane", stored.Username)
}
