package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DisplayConfig holds UI/rendering preferences. The seed dataset itself is
// compiled in and is never configurable.
type DisplayConfig struct {
	// DarkMode is the initial value of the dark-mode flag; the in-app
	// toggle changes the flag for the session only.
	DarkMode bool `mapstructure:"dark_mode" yaml:"dark_mode"`

	// ActivityFeedSize is how many activity entries the dashboard shows.
	ActivityFeedSize int `mapstructure:"activity_feed_size" yaml:"activity_feed_size"`

	// RecentProjects is how many rows the dashboard project table shows.
	RecentProjects int `mapstructure:"recent_projects" yaml:"recent_projects"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/promanage/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "promanage", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Display: DisplayConfig{
			DarkMode:         true,
			ActivityFeedSize: 8,
			RecentProjects:   5,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("display.dark_mode", true)
	v.SetDefault("display.activity_feed_size", 8)
	v.SetDefault("display.recent_projects", 5)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Display.ActivityFeedSize <= 0 {
		cfg.Display.ActivityFeedSize = 8
	}
	if cfg.Display.RecentProjects <= 0 {
		cfg.Display.RecentProjects = 5
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
