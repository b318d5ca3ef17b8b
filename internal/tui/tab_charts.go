package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetflow/internal/cli"
	"github.com/theirongolddev/budgetflow/internal/model"
	"github.com/theirongolddev/budgetflow/internal/pipeline"
	"github.com/theirongolddev/budgetflow/internal/tui/components"
	"github.com/theirongolddev/budgetflow/internal/tui/theme"
)

// maxShareRows caps the ranked breakdown list.
const maxShareRows = 12

func (a App) renderChartsTab(cw int) string {
	t := theme.Active

	if a.summary.ActiveIncome == 0 && a.summary.ActiveExpenditure == 0 {
		return components.ContentCard("Charts",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No active categories to chart."),
			cw, false)
	}

	widths := components.LayoutRow(cw, 2)
	spend := components.ContentCard("Where the money goes",
		a.renderShares(pipeline.ActiveOfType(a.scenario.Categories, model.Expenditure), false, components.CardInnerWidth(widths[0])),
		widths[0], false)

	net := a.summary.Net.Monthly
	compare := components.ContentCard("Income vs expenditure (monthly)",
		components.ColumnChart([]components.Column{
			{Label: "Income", Value: float64(a.summary.Income.Monthly), Color: t.Income},
			{Label: "Spending", Value: float64(a.summary.Expenditure.Monthly), Color: t.Expense},
			{Label: "Net", Value: float64(max(net, 0)), Color: t.AccentBright},
		}, components.CardInnerWidth(widths[1]), 10)+"\n"+a.netLine(),
		widths[1], false)

	income := components.ContentCard("Income sources",
		a.renderShares(pipeline.ActiveOfType(a.scenario.Categories, model.Income), true, components.CardInnerWidth(cw)),
		cw, false)

	return components.CardRow([]string{spend, compare}) + "\n" + income
}

func (a App) netLine() string {
	t := theme.Active
	base := lipgloss.NewStyle().Background(t.Surface)
	net := a.summary.Net.Monthly
	if net < 0 {
		return base.Foreground(t.Danger).Bold(true).
			Render(fmt.Sprintf("Spending exceeds income by %s a month", cli.FormatMoney(-net)))
	}
	return base.Foreground(t.TextMuted).Render("Left over: ") +
		base.Foreground(t.Income).Bold(true).Render(cli.FormatMoney(net)) +
		base.Foreground(t.TextMuted).Render(" a month")
}

func (a App) renderShares(cats []model.Category, income bool, w int) string {
	t := theme.Active
	base := lipgloss.NewStyle().Background(t.Surface)

	shares := pipeline.Breakdown(cats)
	if len(shares) == 0 {
		return base.Foreground(t.TextDim).Render("Nothing allocated yet.")
	}

	nameW := min(max(w/3, 10), 22)
	barW := max(w-nameW-3-12-7, 5)
	peak := float64(shares[0].Value)

	var b strings.Builder
	for i, sh := range shares {
		if i == maxShareRows {
			b.WriteString("\n" + base.Foreground(t.TextDim).Render(fmt.Sprintf("… and %d more", len(shares)-maxShareRows)))
			break
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(base.Width(3).Render(sh.Icon.Glyph()))
		b.WriteString(base.Foreground(t.TextPrimary).Render(fmt.Sprintf("%-*s", nameW, truncStr(sh.Name, nameW))))
		b.WriteString(components.ShareBar(float64(sh.Value), peak, barW, t.ForType(income)))
		b.WriteString(base.Foreground(t.ForType(income)).Render(fmt.Sprintf("%12s", cli.FormatMoney(sh.Value))))
		b.WriteString(base.Foreground(t.TextMuted).Render(fmt.Sprintf("%7s", cli.FormatShare(sh.Percent))))
	}
	return b.String()
}
