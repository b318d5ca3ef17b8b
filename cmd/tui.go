package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetflow/internal/advisor"
	"github.com/theirongolddev/budgetflow/internal/tui"
	"github.com/theirongolddev/budgetflow/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive budget dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	opts := tui.Options{AdvisorTimeout: advisorConfig().Timeout}
	client, err := advisor.NewClient(advisorConfig())
	switch {
	case err == nil:
		opts.Advisor = client
	case !errors.Is(err, advisor.ErrNoAPIKey):
		return err
	}

	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Log lines would corrupt the alternate screen.
	prevLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.Disabled)
	defer zerolog.SetGlobalLevel(prevLevel)

	p := tea.NewProgram(tui.NewApp(cmd.Context(), ws, opts), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("dashboard exited")
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
