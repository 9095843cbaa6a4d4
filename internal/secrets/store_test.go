package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorePutGetDelete(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get("openweather")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(" OpenWeather ", "abc123"))
	got, err := s.Get("openweather")
	require.NoError(t, err)
	require.Equal(t, "abc123", got)

	require.NoError(t, s.Delete("openweather"))
	_, err = s.Get("openweather")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreFileIsPrivateAndSealed(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put("openweather", "plain-text-key"))

	info, err := os.Stat(filepath.Join(dir, fileName))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(filepath.Join(dir, fileName))
	require.NoError(t, err)
	require.NotContains(t, string(data), "plain-text-key")
}

func TestStoreRejectsBlankInput(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.Error(t, s.Put("", "k"))
	require.Error(t, s.Put("openweather", "  "))
	_, err = s.Get(" ")
	require.Error(t, err)
}

func TestStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte("{nope"), 0o600))
	s, err := NewStore(dir)
	require.NoError(t, err)

	_, err = s.Get("openweather")
	require.Error(t, err)
}
