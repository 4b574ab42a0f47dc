package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_CurrentRoundTrip(t *testing.T) {
	storage := NewStorageWithPath(filepath.Join(t.TempDir(), ".shoulders"))

	current, err := storage.Current()
	require.NoError(t, err)
	assert.Empty(t, current)

	require.NoError(t, storage.SetCurrent("team-a"))
	current, err = storage.Current()
	require.NoError(t, err)
	assert.Equal(t, "team-a", current)

	data, err := os.ReadFile(storage.FilePath())
	require.NoError(t, err)
	assert.Equal(t, "current_workspace: team-a\n", string(data))
}

func TestStorage_PreservesOtherKeys(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageWithPath(dir)
	require.NoError(t, os.WriteFile(storage.FilePath(), []byte("theme: dark\ncurrent_workspace: old\n"), 0644))

	require.NoError(t, storage.SetCurrent("team-b"))

	prefs, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, "team-b", prefs.CurrentWorkspace)
	assert.Equal(t, "dark", prefs.Extra["theme"])
}

func TestStorage_CorruptFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	storage := NewStorageWithPath(dir)
	require.NoError(t, os.WriteFile(storage.FilePath(), []byte("current_workspace: [unclosed"), 0644))

	current, err := storage.Current()
	require.NoError(t, err)
	assert.Empty(t, current)

	require.NoError(t, storage.SetCurrent("team-a"))
	current, err = storage.Current()
	require.NoError(t, err)
	assert.Equal(t, "team-a", current)
}

func TestStorage_Resolve(t *testing.T) {
	storage := NewStorageWithPath(t.TempDir())

	_, ok, err := storage.Resolve("")
	require.NoError(t, err)
	assert.False(t, ok)

	ns, ok, err := storage.Resolve(" team-x ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "team-x", ns)

	require.NoError(t, storage.SetCurrent("team-a"))
	ns, ok, err = storage.Resolve("")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "team-a", ns)
}
