package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tinytelemetry/coinwatch/internal/model"

	"github.com/spf13/viper"
)

const (
	storageFile   = "file"
	storageDuckDB = "duckdb"
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	Currency           string        `mapstructure:"currency"`
	Theme              string        `mapstructure:"theme"`
	Skin               string        `mapstructure:"skin"`
	APIBaseURL         string        `mapstructure:"api-base-url"`
	RequestTimeout     time.Duration `mapstructure:"request-timeout"`
	RefreshInterval    time.Duration `mapstructure:"refresh-interval"`
	StorageBackend     string        `mapstructure:"storage-backend"`
	StatePath          string        `mapstructure:"state-path"`
	DBPath             string        `mapstructure:"db-path"`
	WatchlistKey       string        `mapstructure:"watchlist-key"`
	FocusDelay         time.Duration `mapstructure:"focus-delay"`
	FocusErrorDelay    time.Duration `mapstructure:"focus-error-delay"`
	LogFile            string        `mapstructure:"log-file"`
	LogLevel           string        `mapstructure:"log-level"`
	ReverseScrollWheel bool          `mapstructure:"reverse-scroll-wheel"`
	ConfigPath         string        `mapstructure:"-"` // not from config file
	ConfigDir          string        `mapstructure:"-"`

	currency model.Currency
}

func loadConfig(configPath string) (appConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return appConfig{}, fmt.Errorf("finding home directory: %w", err)
	}
	return loadConfigFrom(configPath, home)
}

// loadConfigFrom resolves defaults relative to home. Precedence is
// environment (COINWATCH_*), then config file, then defaults.
func loadConfigFrom(configPath, home string) (appConfig, error) {
	var cfg appConfig

	configDir := filepath.Join(home, ".config", "coinwatch")

	v := viper.New()
	v.SetEnvPrefix("COINWATCH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("currency", string(model.DefaultCurrency))
	v.SetDefault("theme", model.DefaultTheme)
	v.SetDefault("skin", model.DefaultSkin)
	v.SetDefault("api-base-url", model.DefaultAPIBaseURL)
	v.SetDefault("request-timeout", model.DefaultRequestTimeout)
	v.SetDefault("refresh-interval", time.Duration(0))
	v.SetDefault("storage-backend", storageFile)
	v.SetDefault("state-path", filepath.Join(home, ".local", "share", "coinwatch", "state.json"))
	v.SetDefault("db-path", filepath.Join(home, ".local", "share", "coinwatch", "coinwatch.duckdb"))
	v.SetDefault("watchlist-key", model.DefaultWatchlistKey)
	v.SetDefault("focus-delay", model.DefaultFocusDelay)
	v.SetDefault("focus-error-delay", model.DefaultFocusErrorDelay)
	v.SetDefault("log-file", filepath.Join(home, ".local", "state", "coinwatch", "coinwatch.log"))
	v.SetDefault("log-level", "info")
	v.SetDefault("reverse-scroll-wheel", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(configDir, "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()
	cfg.ConfigDir = configDir

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	// Expand ~ in paths
	cfg.StatePath = expandHome(cfg.StatePath, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.LogFile = expandHome(cfg.LogFile, home)

	return cfg, nil
}

func (c *appConfig) validate() error {
	cur, err := model.ParseCurrency(c.Currency)
	if err != nil {
		return err
	}
	c.currency = cur

	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme != "dark" && c.Theme != "light" {
		return fmt.Errorf("invalid theme %q: want dark or light", c.Theme)
	}

	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	if c.StorageBackend != storageFile && c.StorageBackend != storageDuckDB {
		return fmt.Errorf("invalid storage-backend %q: want %s or %s", c.StorageBackend, storageFile, storageDuckDB)
	}

	if c.APIBaseURL == "" {
		return errors.New("api-base-url must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request-timeout: %s", c.RequestTimeout)
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("invalid refresh-interval: %s", c.RefreshInterval)
	}
	if c.RefreshInterval > 0 && c.RefreshInterval < 10*time.Second {
		// The public API rate-limits aggressively.
		return fmt.Errorf("refresh-interval %s is below the 10s minimum", c.RefreshInterval)
	}
	return nil
}

// DarkMode reports whether the configured initial theme is dark.
func (c appConfig) DarkMode() bool { return c.Theme != "light" }

func expandHome(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
