package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// fallbackKeyEnvs are checked after OpenWeather.APIKeyEnv, in order.
var fallbackKeyEnvs = []string{"OPENWEATHERMAP_API_KEY", "OPEN_WEATHER_API_KEY"}

// Config holds application configuration.
type Config struct {
	OpenWeather OpenWeatherConfig
	Log         LogConfig
	Server      ServerConfig
	UI          UIConfig
}

// OpenWeatherConfig holds upstream API settings.
type OpenWeatherConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	APIKey    string        `mapstructure:"api_key"`
	Limit     int           `mapstructure:"limit"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Path       string `mapstructure:"path"` // file path, or "stderr"
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ServerConfig is only read by the proxy API.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	GinMode        string   `mapstructure:"gin_mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RatePerMinute  float64  `mapstructure:"rate_per_minute"`
	Burst          int      `mapstructure:"burst"`
	LogPath        string   `mapstructure:"log_path"` // replaces log.path for the API server
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Placeholder string `mapstructure:"placeholder"`
}

// Load reads configuration from .env, file and env. Env var overrides use prefix CITYCOORDS_.
func Load() (Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	v := viper.New()

	// default values
	v.SetDefault("openweather.base_url", "https://api.openweathermap.org")
	v.SetDefault("openweather.api_key_env", "CITYCOORDS_OPENWEATHER_API_KEY")
	v.SetDefault("openweather.api_key", "")
	v.SetDefault("openweather.limit", 1)
	v.SetDefault("openweather.timeout", time.Duration(0))
	v.SetDefault("log.path", filepath.Join(stateDir(), "citycoords.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", true)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_per_minute", 60.0)
	v.SetDefault("server.burst", 10)
	v.SetDefault("server.log_path", "stderr")
	v.SetDefault("ui.placeholder", "e.g. London")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CITYCOORDS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "citycoords"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CITYCOORDS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// no config file is fine; a broken explicit one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgPath != "" {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// ServerLog is the log config for the API server: the shared log section
// with server.log_path as the sink.
func (c Config) ServerLog() LogConfig {
	lc := c.Log
	if p := strings.TrimSpace(c.Server.LogPath); p != "" {
		lc.Path = p
	}
	return lc
}

// SecretsService names the OpenWeatherMap entry in the secrets store.
const SecretsService = "openweather"

// KeyLookup reads a key kept outside the config file.
type KeyLookup interface {
	Get(service string) (string, error)
}

// APIKey resolves the OpenWeatherMap credential: the configured env var,
// then the well-known fallbacks, then stored (may be nil), then the config
// file value.
func (c Config) APIKey(stored KeyLookup) string {
	envs := append([]string{strings.TrimSpace(c.OpenWeather.APIKeyEnv)}, fallbackKeyEnvs...)
	for _, env := range envs {
		if env == "" {
			continue
		}
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	if stored != nil {
		if k, err := stored.Get(SecretsService); err == nil && strings.TrimSpace(k) != "" {
			return strings.TrimSpace(k)
		}
	}
	return strings.TrimSpace(c.OpenWeather.APIKey)
}

func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "citycoords")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "state", "citycoords")
}
