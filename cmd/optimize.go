package cmd

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetflow/internal/advisor"
	"github.com/theirongolddev/budgetflow/internal/budget"
	"github.com/theirongolddev/budgetflow/internal/cli"
)

var (
	flagIncome string
	flagGoal   string
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Ask the budget advisor where to save",
	Long: "Send the active scenario's expenses, income and a savings goal to the advisor " +
		"and list its suggestions. Requires an API key (see `budgetflow setup`).",
	Args: cobra.NoArgs,
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&flagIncome, "income", "", "Monthly income (default: active income categories)")
	optimizeCmd.Flags().StringVar(&flagGoal, "goal", "", "Monthly savings goal")
	_ = optimizeCmd.MarkFlagRequired("goal")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	goal, err := budget.ParseAmountField("savings goal", flagGoal)
	if err != nil {
		return err
	}
	income := -1.0
	if flagIncome != "" {
		if income, err = budget.ParseAmountField("income", flagIncome); err != nil {
			return err
		}
	}

	conf := advisorConfig()
	client, err := advisor.NewClient(conf)
	if errors.Is(err, advisor.ErrNoAPIKey) {
		return fmt.Errorf("%w: run `budgetflow setup` or set ANTHROPIC_API_KEY", err)
	}
	if err != nil {
		return err
	}

	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	s, err := activeScenario(ws)
	if err != nil {
		return err
	}
	in := advisor.BuildInput(s, income, goal)
	if err := in.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), conf.Timeout)
	defer cancel()
	infof("  Asking the advisor about %s...\n", s.Name)
	out, err := client.Optimize(ctx, in)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SAVINGS SUGGESTIONS  " + s.Name))
	fmt.Println()
	if out == nil || len(out.Suggestions) == 0 {
		fmt.Println("  The advisor had no suggestions.")
		return nil
	}

	rows := make([][]string, 0, len(out.Suggestions))
	for _, sg := range out.Suggestions {
		rows = append(rows, []string{
			cli.Truncate(sg.Category, 24),
			cli.FormatMoneyFloat(sg.PotentialSavings),
			cli.Truncate(sg.Justification, 70),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Saves / month", "Why"},
		Rows:    rows,
		Right:   []bool{false, true, false},
	}))

	total := out.TotalSavings()
	fmt.Printf("  Potential savings: %s a month (goal %s, income %s)\n",
		cli.FormatMoneyFloat(total), cli.FormatMoneyFloat(in.SavingsGoal), cli.FormatMoneyFloat(in.Income))
	if total < in.SavingsGoal {
		short := math.Round(in.SavingsGoal - total)
		fmt.Println(cli.RenderWarning(fmt.Sprintf("Suggestions fall %s short of the goal", cli.FormatMoneyFloat(short))))
	}
	return nil
}
