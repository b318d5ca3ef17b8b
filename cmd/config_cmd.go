package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetflow/internal/advisor"
	"github.com/theirongolddev/budgetflow/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	dbPath := flagDBPath
	if dbPath == "" {
		dbPath = config.DBPath(cfg)
	}
	fmt.Println("  [General]")
	fmt.Printf("    Database:  %s\n", dbPath)
	fmt.Printf("    Currency:  %s\n", cfg.General.CurrencySymbol)
	fmt.Printf("    Locale:    %s\n", cfg.General.Locale)
	fmt.Println()

	fmt.Println("  [Advisor]")
	if key := config.GetAdvisorAPIKey(cfg); key != "" {
		fmt.Printf("    API key:   %s\n", maskAPIKey(key))
	} else {
		fmt.Println("    API key:   not configured")
	}
	fmt.Printf("    Model:     %s\n", firstNonEmpty(cfg.Advisor.Model, advisor.DefaultModel))
	fmt.Printf("    Endpoint:  %s\n", firstNonEmpty(cfg.Advisor.BaseURL, advisor.DefaultBaseURL))
	fmt.Printf("    Timeout:   %s\n", config.AdvisorTimeout(cfg))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:     %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Logging]")
	fmt.Printf("    Level:     %s\n", cfg.Logging.Level)
	fmt.Printf("    Format:    %s\n", cfg.Logging.Format)
	fmt.Println()

	fmt.Println("  Run `budgetflow setup` to reconfigure.")
	return nil
}

// advisorConfig maps the config file onto advisor client settings.
func advisorConfig() advisor.Config {
	return advisor.Config{
		APIKey:    config.GetAdvisorAPIKey(cfg),
		BaseURL:   cfg.Advisor.BaseURL,
		Model:     cfg.Advisor.Model,
		Timeout:   config.AdvisorTimeout(cfg),
		MaxTokens: cfg.Advisor.MaxTokens,
	}
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
