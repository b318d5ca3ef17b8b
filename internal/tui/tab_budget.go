package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetflow/internal/cli"
	"github.com/theirongolddev/budgetflow/internal/model"
	"github.com/theirongolddev/budgetflow/internal/pipeline"
	"github.com/theirongolddev/budgetflow/internal/tui/components"
	"github.com/theirongolddev/budgetflow/internal/tui/theme"
)

func (a App) selectedRow() (model.Category, bool) {
	if len(a.rows) == 0 {
		return model.Category{}, false
	}
	return a.rows[a.budgetList.cursor], true
}

func (a App) updateBudgetKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if moveCursor(&a.budgetList, msg, len(a.rows)) {
		return a, nil
	}
	if key.Matches(msg, keys.Add) {
		return a.startAddCategory()
	}

	c, ok := a.selectedRow()
	if !ok {
		return a, nil
	}

	switch {
	case key.Matches(msg, keys.Dec):
		return a.adjust(c, -valueStep, 0)
	case key.Matches(msg, keys.Inc):
		return a.adjust(c, valueStep, 0)
	case key.Matches(msg, keys.DecBig):
		return a.adjust(c, -bigValueStep, 0)
	case key.Matches(msg, keys.IncBig):
		return a.adjust(c, bigValueStep, 0)
	case key.Matches(msg, keys.MaxDec):
		return a.adjust(c, 0, -maxStep)
	case key.Matches(msg, keys.MaxInc):
		return a.adjust(c, 0, maxStep)
	case key.Matches(msg, keys.Edit):
		return a.startEditCategory(c)
	case key.Matches(msg, keys.Delete):
		return a.deleteCategory(c)
	case key.Matches(msg, keys.Toggle):
		return a.toggleCategory(c)
	}
	return a, nil
}

// adjust moves a category's current and max values. The workspace clamps
// current into [0, max].
func (a App) adjust(c model.Category, dCurrent, dMax int64) (tea.Model, tea.Cmd) {
	_, err := a.ws.UpdateValues(a.ctx, c.ID, c.CurrentValue+dCurrent, max(c.MaxValue+dMax, 0))
	return a, a.result("", err)
}

func (a App) startAddCategory() (tea.Model, tea.Cmd) {
	a.catFields = &CategoryFields{Current: "0", Max: "1000", Type: model.Expenditure}
	return a.openForm(formAddCategory, NewCategoryForm("New category", a.catFields))
}

func (a App) startEditCategory(c model.Category) (tea.Model, tea.Cmd) {
	fields := FieldsFromCategory(c)
	a.catFields = &fields
	a.targetID = c.ID
	title := "Edit " + c.Name
	if c.IsPredefined {
		title += " (renaming creates a custom copy)"
	}
	return a.openForm(formEditCategory, NewCategoryForm(title, a.catFields))
}

func (a App) deleteCategory(c model.Category) (tea.Model, tea.Cmd) {
	removed, err := a.ws.DeleteCategory(a.ctx, c.ID)
	ok := fmt.Sprintf("Deactivated %s", c.Name)
	if removed {
		ok = fmt.Sprintf("Deleted %s", c.Name)
	}
	return a, a.result(ok, err)
}

func (a App) toggleCategory(c model.Category) (tea.Model, tea.Cmd) {
	_, err := a.ws.ToggleActive(a.ctx, c.ID, !c.IsActive)
	verb := "Activated"
	if c.IsActive {
		verb = "Deactivated"
	}
	return a, a.result(verb+" "+c.Name, err)
}

func (a App) summaryCards(cw int) string {
	t := theme.Active
	netColor := t.Income
	if a.summary.Net.Monthly < 0 {
		netColor = t.Danger
	}
	weekly := func(tot model.Totals) string {
		return "≈ " + cli.FormatMoneyFloat(tot.Weekly) + " / week"
	}
	return components.MetricCardRow([]components.Metric{
		{Label: "Monthly income", Value: cli.FormatMoney(a.summary.Income.Monthly), Note: weekly(a.summary.Income), Color: t.Income},
		{Label: "Monthly expenditure", Value: cli.FormatMoney(a.summary.Expenditure.Monthly), Note: weekly(a.summary.Expenditure), Color: t.Expense},
		{Label: "Net", Value: cli.FormatMoney(a.summary.Net.Monthly), Note: cli.FormatMoney(a.summary.Net.Yearly) + " / year", Color: netColor},
	}, cw)
}

func (a App) renderBudgetTab(cw, h int) string {
	cards := a.summaryCards(cw)
	listH := max(h-lipgloss.Height(cards)-3, 1)
	a.budgetList.follow(listH)

	var body string
	if len(a.rows) == 0 {
		body = lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Background(theme.Active.Surface).
			Render("No active categories. Press [a] to add one or activate some in the Manage tab.")
	} else {
		body = a.renderCategoryRows(components.CardInnerWidth(cw), listH)
	}
	title := fmt.Sprintf("%s · %d active", a.scenario.Name, len(a.rows))
	return cards + "\n" + components.ContentCard(title, body, cw, true)
}

func (a App) renderCategoryRows(w, h int) string {
	t := theme.Active

	const (
		iconW   = 3
		amountW = 22
		weeklyW = 14
	)
	nameW := min(max(w/4, 12), 28)
	sliderW := max(w-iconW-nameW-amountW-weeklyW-4, 8)

	end := min(a.budgetList.offset+h, len(a.rows))
	lines := make([]string, 0, end-a.budgetList.offset)
	for i := a.budgetList.offset; i < end; i++ {
		c := a.rows[i]
		income := c.Type == model.Income
		selected := i == a.budgetList.cursor

		bg := t.Surface
		if selected {
			bg = t.SurfaceHover
		}
		base := lipgloss.NewStyle().Background(bg)
		nameStyle := base.Foreground(t.TextPrimary)
		if selected {
			nameStyle = nameStyle.Foreground(t.AccentBright).Bold(true)
		}
		amountStyle := base.Foreground(t.ForType(income))
		dimStyle := base.Foreground(t.TextDim)

		weekly := pipeline.FromMonthly(c.CurrentValue).Weekly
		amount := fmt.Sprintf("%s / %s", cli.FormatMoney(c.CurrentValue), cli.FormatMoney(c.MaxValue))

		line := base.Width(iconW).Render(c.Icon.Glyph()) +
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(c.Name, nameW))) +
			base.Render(" ") +
			components.Slider(c.CurrentValue, c.MaxValue, sliderW, income) +
			base.Render(" ") +
			amountStyle.Render(fmt.Sprintf("%*s", amountW, amount)) +
			dimStyle.Render(fmt.Sprintf("%*s", weeklyW, "≈"+cli.FormatMoneyFloat(weekly)+"/wk"))
		lines = append(lines, lipgloss.PlaceHorizontal(w, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg)))
	}
	return strings.Join(lines, "\n")
}
