package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"villa-client/models"
	"villa-client/utils"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	return NewStore(path, utils.NewSilentLogger()), path
}

func testSession() models.Session {
	return models.Session{
		User:  models.User{ID: 1, Name: "Ayu", Email: "ayu@example.com", Role: models.RoleGuest},
		Token: "bearer-token",
	}
}

func TestRestoreWithoutFileStartsUnauthenticated(t *testing.T) {
	store, _ := newTestStore(t)
	store.Restore()

	assert.Nil(t, store.Current())
	assert.Equal(t, "", store.Token())
	assert.False(t, store.Loading())
}

func TestLoginPersistsAndRestores(t *testing.T) {
	store, path := newTestStore(t)
	store.Restore()

	require.NoError(t, store.Login(testSession()))
	require.NotNil(t, store.Current())
	assert.Equal(t, "bearer-token", store.Token())

	// A fresh store against the same file picks the session back up.
	reopened := NewStore(path, utils.NewSilentLogger())
	reopened.Restore()
	require.NotNil(t, reopened.Current())
	assert.Equal(t, "ayu@example.com", reopened.Current().User.Email)
}

func TestLoginRejectsTokenlessSession(t *testing.T) {
	store, _ := newTestStore(t)
	store.Restore()

	sess := testSession()
	sess.Token = ""
	assert.Error(t, store.Login(sess))
	assert.Nil(t, store.Current())
}

func TestLogoutClearsMemoryAndDisk(t *testing.T) {
	store, path := newTestStore(t)
	store.Restore()
	require.NoError(t, store.Login(testSession()))

	store.Logout()

	assert.Nil(t, store.Current())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRestoreClearsCorruptRecord(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store.Restore()

	assert.Nil(t, store.Current())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "corrupt session file should be removed")
}

func TestRestoreClearsInvariantViolatingRecord(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	// Parses fine but violates the non-empty-token invariant.
	require.NoError(t, os.WriteFile(path, []byte(`{"user":{"id":1},"token":""}`), 0600))

	store.Restore()

	assert.Nil(t, store.Current())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
