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

func (a App) selectedScenario() (model.Scenario, bool) {
	if len(a.scenarios) == 0 {
		return model.Scenario{}, false
	}
	return a.scenarios[a.scenarioList.cursor], true
}

func (a App) updateScenarioKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if moveCursor(&a.scenarioList, msg, len(a.scenarios)) {
		return a, nil
	}
	if key.Matches(msg, keys.NewScenario) {
		name := a.scenario.Name + " (copy)"
		a.nameField = &name
		return a.openForm(formNewScenario, newScenarioNameForm("New scenario (copies "+a.scenario.Name+")", a.nameField))
	}

	s, ok := a.selectedScenario()
	if !ok {
		return a, nil
	}
	switch {
	case key.Matches(msg, keys.Use):
		err := a.ws.SwitchScenario(a.ctx, s.ID)
		return a, a.result("Switched to "+s.Name, err)
	case key.Matches(msg, keys.Rename):
		name := s.Name
		a.nameField = &name
		a.targetID = s.ID
		return a.openForm(formRenameScenario, newScenarioNameForm("Rename scenario", a.nameField))
	case key.Matches(msg, keys.Delete):
		confirm := false
		a.confirm = &confirm
		a.targetID = s.ID
		desc := fmt.Sprintf("%d categories will be removed.", len(s.Categories))
		if len(a.scenarios) == 1 {
			desc += " A fresh default scenario will replace it."
		}
		return a.openForm(formDeleteScenario, newConfirmForm("Delete "+s.Name+"?", desc, a.confirm))
	}
	return a, nil
}

func (a App) renderScenariosTab(cw, h int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)
	a.scenarioList.follow(max(h-4, 1))

	header := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	nameW := max(inner-2-12*3-10, 12)

	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("  %-*s%12s%12s%12s%10s", nameW, "Scenario", "Income", "Spending", "Net", "Active")))
	end := min(a.scenarioList.offset+max(h-4, 1), len(a.scenarios))
	for i := a.scenarioList.offset; i < end; i++ {
		s := a.scenarios[i]
		sum := pipeline.Summarize(s)

		bg := t.Surface
		if i == a.scenarioList.cursor {
			bg = t.SurfaceHover
		}
		base := lipgloss.NewStyle().Background(bg)
		marker := "  "
		nameStyle := base.Foreground(t.TextPrimary)
		if s.ID == a.scenario.ID {
			marker = "● "
			nameStyle = nameStyle.Foreground(t.AccentBright).Bold(true)
		}
		netStyle := base.Foreground(t.Income)
		if sum.Net.Monthly < 0 {
			netStyle = base.Foreground(t.Danger)
		}

		line := base.Foreground(t.Accent).Render(marker) +
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(s.Name, nameW))) +
			base.Foreground(t.Income).Render(fmt.Sprintf("%12s", cli.FormatMoney(sum.Income.Monthly))) +
			base.Foreground(t.Expense).Render(fmt.Sprintf("%12s", cli.FormatMoney(sum.Expenditure.Monthly))) +
			netStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(sum.Net.Monthly))) +
			base.Foreground(t.TextMuted).Render(fmt.Sprintf("%10d", sum.ActiveIncome+sum.ActiveExpenditure))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg)))
	}

	return components.ContentCard(fmt.Sprintf("Scenarios (%d)", len(a.scenarios)), b.String(), cw, true)
}
