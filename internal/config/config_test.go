package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := DefaultConfig()
	cfg.General.CurrencySymbol = "$"
	cfg.Advisor.APIKey = "sk-test"
	cfg.Appearance.Theme = "terminal"

	require.NoError(t, SaveTo(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[appearance]\ntheme = \"catppuccin-mocha\"\n"), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "catppuccin-mocha", cfg.Appearance.Theme)
	assert.Equal(t, "£", cfg.General.CurrencySymbol)
	assert.Equal(t, 30*time.Second, AdvisorTimeout(cfg))
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[general\n"), 0o600))
	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestAdvisorKeyPrecedence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Advisor.APIKey = "from-config"

	t.Setenv("BUDGETFLOW_ADVISOR_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	assert.Equal(t, "from-config", GetAdvisorAPIKey(cfg))

	t.Setenv("ANTHROPIC_API_KEY", "from-anthropic-env")
	assert.Equal(t, "from-anthropic-env", GetAdvisorAPIKey(cfg))

	t.Setenv("BUDGETFLOW_ADVISOR_KEY", "from-env")
	assert.Equal(t, "from-env", GetAdvisorAPIKey(cfg))
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	assert.Equal(t, "/tmp/cfg/budgetflow/config.toml", ConfigPath())
	assert.Equal(t, "/tmp/data/budgetflow/budget.db", DBPath(DefaultConfig()))

	cfg := DefaultConfig()
	cfg.General.DBPath = "/elsewhere/b.db"
	assert.Equal(t, "/elsewhere/b.db", DBPath(cfg))
}
