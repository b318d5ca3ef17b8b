package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/theirongolddev/budgetflow/internal/config"
	"github.com/theirongolddev/budgetflow/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

type setupValues struct {
	currency string
	locale   string
	theme    string
	apiKey   string
}

func validateLocale(s string) error {
	if _, err := language.Parse(strings.TrimSpace(s)); err != nil {
		return errors.New("not a valid locale tag, e.g. en-GB")
	}
	return nil
}

func newSetupForm(v *setupValues, existingKey string) *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themes = append(themes, huh.NewOption(name, name))
	}

	keyDesc := "Used by `budgetflow optimize` and the Advisor tab. Leave blank to skip."
	if existingKey != "" {
		keyDesc = fmt.Sprintf("Current: %s. Leave blank to keep it.", maskAPIKey(existingKey))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to budgetflow").
				Description("A few settings for display and the budget advisor."),
			huh.NewInput().
				Title("Currency symbol").
				CharLimit(4).
				Value(&v.currency).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("currency symbol is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Locale").
				Description("Controls number grouping, e.g. en-GB, de-DE").
				Value(&v.locale).
				Validate(validateLocale),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.theme),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Anthropic API key").
				Description(keyDesc).
				EchoMode(huh.EchoModePassword).
				Value(&v.apiKey),
		),
	)
}

func runSetup(_ *cobra.Command, _ []string) error {
	existing := config.GetAdvisorAPIKey(cfg)
	v := setupValues{
		currency: cfg.General.CurrencySymbol,
		locale:   cfg.General.Locale,
		theme:    theme.ByName(cfg.Appearance.Theme).Name,
	}

	if err := newSetupForm(&v, existing).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	cfg.General.CurrencySymbol = strings.TrimSpace(v.currency)
	cfg.General.Locale = strings.TrimSpace(v.locale)
	cfg.Appearance.Theme = v.theme
	if key := strings.TrimSpace(v.apiKey); key != "" {
		cfg.Advisor.APIKey = key
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `budgetflow setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
