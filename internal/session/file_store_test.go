package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nfrund/portal/internal/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionPath = "/home/user/.config/portal/session.json"

func TestFileStore_KeepLoggedInWritesFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store := NewFileStore(fsys, testSessionPath)

	require.NoError(t, store.Login(context.Background(), json.RawMessage(`{"token":"abc"}`), true))

	info, err := fsys.Stat(testSessionPath)
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())

	rec, err := store.Load()
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"abc"}`, string(rec.Data))
	assert.False(t, rec.SavedAt.IsZero())

	current, ok := store.Current()
	assert.True(t, ok)
	assert.JSONEq(t, `{"token":"abc"}`, string(current))
}

func TestFileStore_WithoutKeepOnlyHoldsInMemory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store := NewFileStore(fsys, testSessionPath)

	// An older persisted session is replaced by the process-only one.
	require.NoError(t, store.Login(context.Background(), json.RawMessage(`{"token":"old"}`), true))
	require.NoError(t, store.Login(context.Background(), json.RawMessage(`{"token":"new"}`), false))

	exists, err := afero.Exists(fsys, testSessionPath)
	require.NoError(t, err)
	assert.False(t, exists)

	current, ok := store.Current()
	assert.True(t, ok)
	assert.JSONEq(t, `{"token":"new"}`, string(current))

	_, err = store.Load()
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestFileStore_Clear(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store := NewFileStore(fsys, testSessionPath)

	assert.NoError(t, store.Clear(), "clearing a missing session is not an error")

	require.NoError(t, store.Login(context.Background(), json.RawMessage(`{}`), true))
	require.NoError(t, store.Clear())

	_, err := store.Load()
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestFileStore_CorruptFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, testSessionPath, []byte("{"), 0o600))

	_, err := NewFileStore(fsys, testSessionPath).Load()
	assert.ErrorContains(t, err, "failed to decode session file")
}
