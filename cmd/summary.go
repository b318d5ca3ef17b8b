package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/budgetflow/internal/cli"
	"github.com/theirongolddev/budgetflow/internal/model"
	"github.com/theirongolddev/budgetflow/internal/pipeline"
)

var flagChart bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Income, spending and net totals for the active scenario",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().BoolVarP(&flagChart, "chart", "c", false, "Show spending and income breakdown charts")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ws, closeFn, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	s, err := activeScenario(ws)
	if err != nil {
		return err
	}
	sum := pipeline.Summarize(s)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET  %s", s.Name)))
	fmt.Println()

	if sum.ActiveIncome == 0 && sum.ActiveExpenditure == 0 {
		fmt.Println("  No active categories in this scenario.")
		fmt.Println("  Activate some with `budgetflow category toggle <name>`.")
		return nil
	}

	row := func(label string, t model.Totals) []string {
		return []string{label, cli.FormatMoneyFloat(t.Weekly), cli.FormatMoney(t.Monthly), cli.FormatMoney(t.Yearly)}
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"", "Weekly (approx.)", "Monthly", "Yearly"},
		Rows: [][]string{
			row("Income", sum.Income),
			row("Expenditure", sum.Expenditure),
			{"---"},
			row("Net", sum.Net),
		},
	}))

	for _, line := range countLines(sum) {
		fmt.Println(line)
	}
	if sum.Net.Monthly < 0 {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("Spending exceeds income by %s a month", cli.FormatMoney(-sum.Net.Monthly))))
	}

	if !flagChart {
		return nil
	}
	fmt.Println()
	renderBreakdown("Expenditure breakdown", pipeline.ActiveOfType(s.Categories, model.Expenditure), false)
	renderBreakdown("Income breakdown", pipeline.ActiveOfType(s.Categories, model.Income), true)
	renderComparison(sum)
	return nil
}

// countLines describes how many categories are active and how many catalog
// categories are waiting to be switched on.
func countLines(sum model.Summary) []string {
	lines := []string{fmt.Sprintf("  %d income and %d expenditure categories active, %d inactive",
		sum.ActiveIncome, sum.ActiveExpenditure, sum.InactiveCategories)}
	if sum.PredefinedInactive > 0 {
		lines = append(lines, cli.RenderMuted(fmt.Sprintf(
			"  %d predefined categories available, see `budgetflow category list --all`", sum.PredefinedInactive)))
	}
	return lines
}

func renderBreakdown(title string, cats []model.Category, income bool) {
	shares := pipeline.Breakdown(cats)
	if len(shares) == 0 {
		return
	}

	fmt.Println("  " + title)
	labelWidth := 0
	for _, sh := range shares {
		labelWidth = max(labelWidth, len([]rune(sh.Name)))
	}
	labelWidth = min(labelWidth, 24)

	top := float64(shares[0].Value)
	for _, sh := range shares {
		label := fmt.Sprintf("%s %-*s %10s %6s", sh.Icon.Glyph(), labelWidth, cli.Truncate(sh.Name, labelWidth),
			cli.FormatMoney(sh.Value), cli.FormatShare(sh.Percent))
		fmt.Println(cli.RenderHorizontalBar(label, float64(sh.Value), top, 30, income))
	}
	fmt.Println()
}

func renderComparison(sum model.Summary) {
	top := float64(max(sum.Income.Monthly, sum.Expenditure.Monthly))
	fmt.Println("  Income vs expenditure")
	fmt.Println(cli.RenderHorizontalBar(fmt.Sprintf("%-12s %10s", "Income", cli.FormatMoney(sum.Income.Monthly)),
		float64(sum.Income.Monthly), top, 40, true))
	fmt.Println(cli.RenderHorizontalBar(fmt.Sprintf("%-12s %10s", "Expenditure", cli.FormatMoney(sum.Expenditure.Monthly)),
		float64(sum.Expenditure.Monthly), top, 40, false))
	fmt.Println()
}
