// Package config loads and saves the budgetflow TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all budgetflow configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Advisor    AdvisorConfig    `toml:"advisor"`
	Appearance AppearanceConfig `toml:"appearance"`
	Logging    LoggingConfig    `toml:"logging"`
}

// GeneralConfig holds storage and display preferences.
type GeneralConfig struct {
	DBPath         string `toml:"db_path,omitempty"`
	CurrencySymbol string `toml:"currency_symbol"`
	Locale         string `toml:"locale"`
}

// AdvisorConfig holds settings for the budget optimization service.
type AdvisorConfig struct {
	APIKey     string `toml:"api_key,omitempty"`
	BaseURL    string `toml:"base_url,omitempty"`
	Model      string `toml:"model,omitempty"`
	TimeoutSec int    `toml:"timeout_sec"`
	MaxTokens  int    `toml:"max_tokens,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LoggingConfig controls diagnostic output on stderr.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			CurrencySymbol: "£",
			Locale:         "en-GB",
		},
		Advisor: AdvisorConfig{
			TimeoutSec: 30,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetflow")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budgetflow")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetflow")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "budgetflow")
}

// DBPath returns the budget database path, honouring the config override.
func DBPath(cfg Config) string {
	if cfg.General.DBPath != "" {
		return cfg.General.DBPath
	}
	return filepath.Join(DataDir(), "budget.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config file at path over the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the config to path, readable only by the owner.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// GetAdvisorAPIKey returns the API key from env vars or config, in that order.
func GetAdvisorAPIKey(cfg Config) string {
	for _, env := range []string{"BUDGETFLOW_ADVISOR_KEY", "ANTHROPIC_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return cfg.Advisor.APIKey
}

// AdvisorTimeout returns the advisor request timeout.
func AdvisorTimeout(cfg Config) time.Duration {
	if cfg.Advisor.TimeoutSec <= 0 {
		return 30 * time.Second
	}
	return time.Duration(cfg.Advisor.TimeoutSec) * time.Second
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
