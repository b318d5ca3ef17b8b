package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/budgetflow/internal/cli"
	"github.com/theirongolddev/budgetflow/internal/model"
	"github.com/theirongolddev/budgetflow/internal/tui/components"
	"github.com/theirongolddev/budgetflow/internal/tui/theme"
)

func (a App) updateManageKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if moveCursor(&a.manageList, msg, len(a.managed)) {
		return a, nil
	}
	if key.Matches(msg, keys.Add) {
		return a.startAddCategory()
	}
	if len(a.managed) == 0 {
		return a, nil
	}

	c := a.managed[a.manageList.cursor]
	switch {
	case key.Matches(msg, keys.Toggle):
		return a.toggleCategory(c)
	case key.Matches(msg, keys.Edit):
		return a.startEditCategory(c)
	case key.Matches(msg, keys.Delete):
		return a.deleteCategory(c)
	}
	return a, nil
}

func (a App) renderManageTab(cw, h int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)
	listH := max(h-4, 1)
	a.manageList.follow(listH)

	section := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	nameW := min(max(inner/3, 14), 30)
	descW := max(inner-nameW-3-8-14-12, 0)

	var lines []string
	end := min(a.manageList.offset+listH, len(a.managed))
	for i := a.manageList.offset; i < end; i++ {
		c := a.managed[i]
		if i == 0 || c.IsPredefined != a.managed[i-1].IsPredefined || i == a.manageList.offset {
			title := "Custom categories"
			if c.IsPredefined {
				title = "Predefined categories"
			}
			lines = append(lines, section.Render(title))
		}

		bg := t.Surface
		if i == a.manageList.cursor {
			bg = t.SurfaceHover
		}
		base := lipgloss.NewStyle().Background(bg)
		toggle := base.Foreground(t.TextDim).Render("[ ] ")
		nameStyle := base.Foreground(t.TextMuted)
		if c.IsActive {
			toggle = base.Foreground(t.Income).Render("[✓] ")
			nameStyle = base.Foreground(t.TextPrimary)
		}

		line := toggle +
			base.Width(3).Render(c.Icon.Glyph()) +
			nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(c.Name, nameW))) +
			base.Foreground(t.ForType(c.Type == model.Income)).Render(fmt.Sprintf("%-12s", c.Type.Label())) +
			base.Foreground(t.TextMuted).Render(fmt.Sprintf("%14s", cli.FormatMoney(c.CurrentValue)))
		if descW > 4 && c.Description != "" {
			line += base.Foreground(t.TextDim).Render("  " + truncStr(c.Description, descW-2))
		}
		lines = append(lines, lipgloss.PlaceHorizontal(inner, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg)))
	}

	if len(a.managed) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No categories. Press [a] to add one."))
	}

	title := fmt.Sprintf("Manage categories · %d active, %d inactive",
		a.summary.ActiveIncome+a.summary.ActiveExpenditure, a.summary.InactiveCategories)
	return components.ContentCard(title, strings.Join(lines, "\n"), cw, true)
}
