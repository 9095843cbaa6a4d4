package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, env := range append([]string{"CITYCOORDS_OPENWEATHER_API_KEY"}, fallbackKeyEnvs...) {
		t.Setenv(env, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("CITYCOORDS_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "https://api.openweathermap.org", cfg.OpenWeather.BaseURL)
	require.Equal(t, 1, cfg.OpenWeather.Limit)
	require.Equal(t, time.Duration(0), cfg.OpenWeather.Timeout)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	require.Equal(t, "e.g. London", cfg.UI.Placeholder)
	require.Equal(t, filepath.Join(os.Getenv("HOME"), ".local", "state", "citycoords", "citycoords.log"), cfg.Log.Path)
	require.Equal(t, "stderr", cfg.ServerLog().Path)
}

func TestServerLogPathFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[log]
level = "warn"

[server]
log_path = "/var/log/citycoords/api.log"
`), 0o600))
	t.Setenv("CITYCOORDS_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	lc := cfg.ServerLog()
	require.Equal(t, "/var/log/citycoords/api.log", lc.Path)
	require.Equal(t, "warn", lc.Level)
	require.NotEqual(t, lc.Path, cfg.Log.Path, "the TUI log path is left alone")
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[openweather]
api_key = "from-file"
timeout = "5s"

[log]
level = "debug"

[server]
addr = ":9090"
`), 0o600))
	t.Setenv("CITYCOORDS_CONFIG", path)
	t.Setenv("CITYCOORDS_SERVER_ADDR", ":7070")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "from-file", cfg.OpenWeather.APIKey)
	require.Equal(t, 5*time.Second, cfg.OpenWeather.Timeout)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, ":7070", cfg.Server.Addr, "env overrides file")
}

func TestLoadRejectsBrokenExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[openweather\nbroken"), 0o600))
	t.Setenv("CITYCOORDS_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}

type mapLookup map[string]string

func (m mapLookup) Get(service string) (string, error) {
	if k, ok := m[service]; ok {
		return k, nil
	}
	return "", errors.New("not found")
}

func TestAPIKeyResolutionOrder(t *testing.T) {
	clearKeyEnv(t)
	cfg := Config{OpenWeather: OpenWeatherConfig{APIKeyEnv: "CITYCOORDS_OPENWEATHER_API_KEY", APIKey: " file-key "}}
	stored := mapLookup{SecretsService: "stored-key"}

	require.Equal(t, "file-key", cfg.APIKey(nil))
	require.Equal(t, "file-key", cfg.APIKey(mapLookup{}))
	require.Equal(t, "stored-key", cfg.APIKey(stored))

	t.Setenv("OPEN_WEATHER_API_KEY", "vite-style")
	require.Equal(t, "vite-style", cfg.APIKey(stored))

	t.Setenv("OPENWEATHERMAP_API_KEY", "dotenv-style")
	require.Equal(t, "dotenv-style", cfg.APIKey(stored))

	t.Setenv("CITYCOORDS_OPENWEATHER_API_KEY", "primary")
	require.Equal(t, "primary", cfg.APIKey(stored))
}

func TestAPIKeyEmptyWhenUnset(t *testing.T) {
	clearKeyEnv(t)
	require.Empty(t, Config{}.APIKey(nil))
}
