package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetflow/internal/budget"
	"github.com/theirongolddev/budgetflow/internal/cli"
	"github.com/theirongolddev/budgetflow/internal/model"
	"github.com/theirongolddev/budgetflow/internal/pipeline"
)

var (
	flagScenarioFrom string
	flagYes          bool
)

var scenarioCmd = &cobra.Command{
	Use:     "scenario",
	Aliases: []string{"sc"},
	Short:   "Manage budget scenarios",
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenarios with their monthly totals",
	Args:  cobra.NoArgs,
	RunE:  runScenarioList,
}

var scenarioNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Copy a scenario under a new name and switch to it",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioNew,
}

var scenarioRenameCmd = &cobra.Command{
	Use:   "rename <id|name> <new-name>",
	Short: "Rename a scenario",
	Args:  cobra.ExactArgs(2),
	RunE:  runScenarioRename,
}

var scenarioDeleteCmd = &cobra.Command{
	Use:     "delete <id|name>",
	Aliases: []string{"rm"},
	Short:   "Delete a scenario",
	Args:    cobra.ExactArgs(1),
	RunE:    runScenarioDelete,
}

var scenarioUseCmd = &cobra.Command{
	Use:   "use <id|name>",
	Short: "Make a scenario active",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioUse,
}

func init() {
	scenarioNewCmd.Flags().StringVar(&flagScenarioFrom, "from", "", "Scenario to copy (default: active)")
	scenarioDeleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")

	scenarioCmd.AddCommand(scenarioListCmd, scenarioNewCmd, scenarioRenameCmd, scenarioDeleteCmd, scenarioUseCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func runScenarioList(cmd *cobra.Command, _ []string) error {
	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	st := ws.State()
	rows := make([][]string, 0, len(st.Scenarios))
	for _, s := range st.Scenarios {
		mark := ""
		if s.ID == st.ActiveID {
			mark = "*"
		}
		sum := pipeline.Summarize(s)
		rows = append(rows, []string{
			mark,
			cli.ShortID(s.ID),
			cli.Truncate(s.Name, 32),
			cli.FormatNumber(int64(len(s.Categories))),
			cli.FormatMoney(sum.Income.Monthly),
			cli.FormatMoney(sum.Expenditure.Monthly),
			cli.FormatDelta(sum.Net.Monthly),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Scenarios",
		Headers: []string{"", "ID", "Name", "Categories", "Income", "Spending", "Net"},
		Rows:    rows,
		Right:   []bool{false, false, false, true, true, true, true},
	}))
	return nil
}

// findScenario resolves ref against the workspace state with a friendlier error.
func findScenario(ws *budget.Workspace, ref string) (model.Scenario, error) {
	s, err := budget.FindScenario(ws.State(), ref)
	if err != nil {
		return s, fmt.Errorf("scenario %q: %w", ref, err)
	}
	return s, nil
}

func runScenarioNew(cmd *cobra.Command, args []string) error {
	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	var fromID string
	if flagScenarioFrom != "" {
		src, err := findScenario(ws, flagScenarioFrom)
		if err != nil {
			return err
		}
		fromID = src.ID
	}

	s, err := ws.CreateScenario(cmd.Context(), args[0], fromID)
	if err != nil {
		return err
	}
	infof("  Created %s (%s) with %d categories and switched to it\n", s.Name, cli.ShortID(s.ID), len(s.Categories))
	return nil
}

func runScenarioRename(cmd *cobra.Command, args []string) error {
	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	s, err := findScenario(ws, args[0])
	if err != nil {
		return err
	}
	if err := ws.RenameScenario(cmd.Context(), s.ID, args[1]); err != nil {
		return err
	}
	infof("  Renamed %s to %s\n", s.Name, args[1])
	return nil
}

func runScenarioDelete(cmd *cobra.Command, args []string) error {
	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	s, err := findScenario(ws, args[0])
	if err != nil {
		return err
	}

	if !flagYes {
		ok := false
		desc := "This cannot be undone."
		if len(ws.Scenarios()) == 1 {
			desc = "This is the last scenario; a fresh default will replace it."
		}
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q?", s.Name)).
			Description(desc).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&ok).
			Run()
		if err != nil {
			if aborted(err) {
				return nil
			}
			return err
		}
		if !ok {
			infof("  Kept %s\n", s.Name)
			return nil
		}
	}

	if err := ws.DeleteScenario(cmd.Context(), s.ID); err != nil {
		return err
	}
	infof("  Deleted %s\n", s.Name)
	if active, ok := ws.Active(); ok {
		infof("  Active scenario: %s\n", active.Name)
	}
	return nil
}

func runScenarioUse(cmd *cobra.Command, args []string) error {
	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	s, err := findScenario(ws, args[0])
	if err != nil {
		return err
	}
	if err := ws.SwitchScenario(cmd.Context(), s.ID); err != nil {
		return err
	}
	infof("  Active scenario: %s\n", s.Name)
	return nil
}
