// Package config loads HiveCast settings from the environment and an
// optional config file in the data directory. The result is read once at
// startup; nothing re-reads it mid-session.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is everything the app needs to pick a backend and start up.
type Config struct {
	// APIURL is the base URL of the hosted HiveCast API.
	APIURL string `mapstructure:"api_url"`
	// APIKey authenticates the app against the hosted API.
	APIKey string `mapstructure:"api_key"`
	// DataDir holds the local JSON namespaces, the auth token, and logs.
	DataDir string `mapstructure:"data_dir"`
	// Debug enables verbose logging.
	Debug bool `mapstructure:"debug"`
}

// Load reads configuration from HIVECAST_* environment variables and, when
// present, config.yaml in the data directory. Environment wins over file.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("hivecast")
	v.AutomaticEnv()

	// Defaults register the keys so AutomaticEnv values survive Unmarshal.
	v.SetDefault("api_url", "")
	v.SetDefault("api_key", "")
	v.SetDefault("debug", false)

	dataDir := v.GetString("data_dir")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("config: resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".hivecast")
	}
	v.SetDefault("data_dir", dataDir)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}

// RemoteConfigured reports whether the hosted backend is usable: a
// well-formed http(s) API URL plus a non-empty key. Anything less and the
// session runs local-only.
func (c Config) RemoteConfigured() bool {
	if strings.TrimSpace(c.APIKey) == "" {
		return false
	}
	u, err := url.Parse(strings.TrimSpace(c.APIURL))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// TokenPath is where the remote session token lives.
func (c Config) TokenPath() string {
	return filepath.Join(c.DataDir, "token")
}
