package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dotnot-labs/regui/internal/branding"
	"github.com/dotnot-labs/regui/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeySourceURL   = "source_url"
	KeyCatalogPath = "catalog_path"
	KeyVariant     = "variant"
	KeyDebug       = "debug"
	KeyListen      = "listen"
	KeyProxyConfig = "proxy_config"
)

// DefaultListen is the address used by the page host when none is set.
const DefaultListen = ":8080"

// Keys lists every recognized setting.
var Keys = []string{KeySourceURL, KeyCatalogPath, KeyVariant, KeyDebug, KeyListen, KeyProxyConfig}

// Dir returns the path to the config directory (~/.regui/). The
// <PREFIX>_HOME environment variable overrides it.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.regui/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Variables from ./.env are loaded first without overriding the real
// environment.
func Load() {
	// Ignore error if .env doesn't exist.
	_ = godotenv.Load()

	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeySourceURL, branding.SourceURL())
	viper.SetDefault(KeyCatalogPath, branding.CatalogPath())
	viper.SetDefault(KeyVariant, "enriched")
	viper.SetDefault(KeyListen, DefaultListen)
	viper.SetDefault(KeyDebug, false)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetBool returns a boolean config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// IsSet reports whether key has a value from the file or environment
// rather than a default.
func IsSet(key string) bool {
	return viper.InConfig(key) || os.Getenv(branding.EnvVar(key)) != ""
}

// Known reports whether key is a recognized setting.
func Known(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !Known(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	logging.For(logging.CatConfig).WithField("key", key).Debug("setting written")
	return nil
}
