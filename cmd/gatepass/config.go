package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tinytelemetry/gatepass/internal/kvstore"
	"github.com/tinytelemetry/gatepass/internal/model"
	"github.com/tinytelemetry/gatepass/internal/nav"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultQueryTimeout = 5 * time.Second

	// backendMemory keeps preferences for the lifetime of the process only.
	backendMemory = "memory"
)

// appConfig holds the runtime configuration shared by every subcommand.
type appConfig struct {
	PageFile         string        `mapstructure:"page-file"`
	StoreBackend     string        `mapstructure:"store-backend"`
	StorePath        string        `mapstructure:"store-path"`
	Origin           string        `mapstructure:"origin"`
	StartPath        string        `mapstructure:"start-path"`
	Selection        string        `mapstructure:"selection"`
	MobileBreakpoint int           `mapstructure:"mobile-breakpoint"`
	ClockInterval    time.Duration `mapstructure:"clock-interval"`
	QueryTimeout     time.Duration `mapstructure:"query-timeout"`
	LogFile          string        `mapstructure:"log-file"`
	WatchPage        bool          `mapstructure:"watch-page"`
	ConfigPath       string        `mapstructure:"-"` // not from config file
}

// bindFlags registers the config keys that may be overridden on the command
// line.
func bindFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default is $HOME/.config/gatepass/config.yml)")
	fs.String("page-file", "", "page snapshot YAML (default is the built-in admin page)")
	fs.String("store-backend", model.DefaultStoreBackend, "preference store backend (duckdb|sqlite|memory)")
	fs.String("store-path", "", "preference database path (default is $HOME/.config/gatepass/prefs.<backend>)")
	fs.String("origin", model.DefaultOrigin, "origin that scopes stored preferences")
	fs.String("start-path", model.DefaultStartPath, "location of the first page load")
	fs.String("selection", model.DefaultSelection, "duplicate path handling (all|first)")
	fs.Int("mobile-breakpoint", model.DefaultMobileBreakpoint, "terminal width at or below which the sidebar becomes an overlay")
	fs.Duration("clock-interval", model.DefaultClockInterval, "header clock refresh interval")
	fs.Duration("query-timeout", defaultQueryTimeout, "preference store query timeout")
	fs.String("log-file", "", "write logs to this file while the dashboard runs")
	fs.Bool("watch-page", false, "reload the page snapshot when the page file changes")
}

func loadConfig(configPath string, flags *pflag.FlagSet) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("GATEPASS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("page-file", "")
	v.SetDefault("store-backend", model.DefaultStoreBackend)
	v.SetDefault("store-path", "")
	v.SetDefault("origin", model.DefaultOrigin)
	v.SetDefault("start-path", model.DefaultStartPath)
	v.SetDefault("selection", model.DefaultSelection)
	v.SetDefault("mobile-breakpoint", model.DefaultMobileBreakpoint)
	v.SetDefault("clock-interval", model.DefaultClockInterval)
	v.SetDefault("query-timeout", defaultQueryTimeout)
	v.SetDefault("log-file", "")
	v.SetDefault("watch-page", false)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return cfg, fmt.Errorf("binding flags: %w", err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "gatepass", "config.yml"))
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

	switch cfg.StoreBackend {
	case kvstore.BackendDuckDB, kvstore.BackendSQLite, backendMemory:
	default:
		return cfg, fmt.Errorf("invalid store-backend: %q", cfg.StoreBackend)
	}
	if _, err := nav.ParseSelectionMode(cfg.Selection); err != nil {
		return cfg, err
	}
	if cfg.MobileBreakpoint <= 0 {
		return cfg, fmt.Errorf("invalid mobile-breakpoint: %d", cfg.MobileBreakpoint)
	}

	// Expand ~ in paths
	cfg.StorePath = expandHome(cfg.StorePath, home)
	cfg.PageFile = expandHome(cfg.PageFile, home)
	cfg.LogFile = expandHome(cfg.LogFile, home)

	if cfg.StorePath == "" && cfg.StoreBackend != backendMemory {
		cfg.StorePath = filepath.Join(home, ".config", "gatepass", "prefs."+cfg.StoreBackend)
	}

	return cfg, nil
}

func expandHome(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// openStore opens the configured preference store.
func openStore(cfg appConfig) (model.PreferenceStore, error) {
	if cfg.StoreBackend == backendMemory {
		return model.NewMemoryStore(), nil
	}
	store, err := kvstore.Open(cfg.StoreBackend, cfg.StorePath, cfg.Origin, cfg.QueryTimeout)
	if err != nil {
		return nil, fmt.Errorf("opening preference store: %w", err)
	}
	return store, nil
}
